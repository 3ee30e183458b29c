package repository

import (
	"context"
	"errors"

	"alumnihub/internal/cache"
	"alumnihub/internal/models"
	"alumnihub/internal/observability"

	"gorm.io/gorm"
)

// ActivityRepository defines persistence operations for feed posts and likes.
type ActivityRepository interface {
	ListPosts(ctx context.Context, limit, offset int) ([]models.ActivityPost, error)
	GetPost(ctx context.Context, id uint) (*models.ActivityPost, error)
	PostExists(ctx context.Context, id uint) (bool, error)
	CreatePost(ctx context.Context, post *models.ActivityPost) error
	HasLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, like *models.Like) error
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository returns a new ActivityRepository implementation.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func withPostDetails(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Author").
		Preload("Likes")
}

func fillPostCounts(post *models.ActivityPost) {
	post.LikesCount = len(post.Likes)
	post.CommentsCount = len(post.Comments)
}

// ListPosts returns posts newest first with author, comments and likes loaded.
func (r *activityRepository) ListPosts(ctx context.Context, limit, offset int) ([]models.ActivityPost, error) {
	defer observability.TrackQuery("select", "activity_posts")()
	posts := make([]models.ActivityPost, 0)
	q := withPostDetails(readDB(r.db).WithContext(ctx)).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range posts {
		fillPostCounts(&posts[i])
	}
	return posts, nil
}

func (r *activityRepository) GetPost(ctx context.Context, id uint) (*models.ActivityPost, error) {
	var post models.ActivityPost
	if err := withPostDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessage("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	fillPostCounts(&post)
	return &post, nil
}

func (r *activityRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ActivityPost{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *activityRepository) CreatePost(ctx context.Context, post *models.ActivityPost) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Community", "Comments", "Likes").Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	if post.CommunityID != nil {
		cache.InvalidateCommunity(ctx, *post.CommunityID)
	}
	return nil
}

func (r *activityRepository) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the like. A concurrent duplicate surfaces as the same conflict as the pre-check.
func (r *activityRepository) Like(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already liked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Unlike deletes the like and reports whether one existed.
func (r *activityRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
