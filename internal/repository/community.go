package repository

import (
	"context"
	"errors"

	"alumnihub/internal/cache"
	"alumnihub/internal/models"

	"gorm.io/gorm"
)

// CommunityRepository defines persistence operations for communities and memberships.
type CommunityRepository interface {
	List(ctx context.Context) ([]models.Community, error)
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	Exists(ctx context.Context, id uint) (bool, error)
	CreateWithCreator(ctx context.Context, community *models.Community) error
	IsMember(ctx context.Context, userID, communityID uint) (bool, error)
	AddMember(ctx context.Context, member *models.CommunityMember) error
	RemoveMember(ctx context.Context, userID, communityID uint) (bool, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository returns a new CommunityRepository implementation.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func withCommunityDetails(q *gorm.DB) *gorm.DB {
	return q.
		Preload("CreatedBy").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Members.User").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Posts.Author")
}

func (r *communityRepository) List(ctx context.Context) ([]models.Community, error) {
	communities := make([]models.Community, 0)
	err := cache.Aside(ctx, cache.CommunitiesListKey, &communities, cache.CommunityTTL, func() error {
		if err := withCommunityDetails(readDB(r.db).WithContext(ctx)).
			Order("created_at DESC, id DESC").
			Find(&communities).Error; err != nil {
			return models.NewInternalError(err)
		}
		for i := range communities {
			communities[i].MemberCount = len(communities[i].Members)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	err := cache.Aside(ctx, cache.CommunityKey(id), &community, cache.CommunityTTL, func() error {
		if err := withCommunityDetails(readDB(r.db).WithContext(ctx)).First(&community, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundMessage("Community not found")
			}
			return models.NewInternalError(err)
		}
		community.MemberCount = len(community.Members)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Community{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// CreateWithCreator inserts the community and its creator's membership in one transaction.
func (r *communityRepository) CreateWithCreator(ctx context.Context, community *models.Community) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("CreatedBy", "Members", "Posts").Create(community).Error; err != nil {
			return err
		}
		member := models.CommunityMember{UserID: community.CreatedByID, CommunityID: community.ID}
		if err := tx.Omit("User", "Community").Create(&member).Error; err != nil {
			return err
		}
		community.Members = []models.CommunityMember{member}
		community.MemberCount = 1
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CommunitiesListKey)
	return nil
}

func (r *communityRepository) IsMember(ctx context.Context, userID, communityID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CommunityMember{}).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// AddMember inserts the membership. A concurrent duplicate surfaces as a conflict.
func (r *communityRepository) AddMember(ctx context.Context, member *models.CommunityMember) error {
	if err := r.db.WithContext(ctx).Omit("User", "Community").Create(member).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already a member")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateCommunity(ctx, member.CommunityID)
	return nil
}

// RemoveMember deletes the membership and reports whether one existed.
func (r *communityRepository) RemoveMember(ctx context.Context, userID, communityID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Delete(&models.CommunityMember{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidateCommunity(ctx, communityID)
	}
	return res.RowsAffected > 0, nil
}
