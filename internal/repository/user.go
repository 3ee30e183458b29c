package repository

import (
	"context"
	"errors"
	"strings"

	"alumnihub/internal/cache"
	"alumnihub/internal/models"
	"alumnihub/internal/observability"

	"gorm.io/gorm"
)

// SearchLimit caps directory search results.
const SearchLimit = 10

// profileColumns are the columns a profile update may touch. Email, password
// and role are never written through Update.
var profileColumns = []string{
	"full_name", "phone", "graduation_year", "language", "linkedin",
	"skills", "company", "location", "updated_at",
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Search(ctx context.Context, query string) ([]models.UserSummary, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		defer observability.TrackQuery("select", "users")()
		if err := readDB(r.db).WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundMessage("User not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the email. The password hash is loaded.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).Select(profileColumns).Updates(user)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundMessage("User not found")
	}
	cache.InvalidateUser(ctx, user.ID)
	cache.InvalidateAllCommunities(ctx)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundMessage("User not found")
	}
	cache.InvalidateUser(ctx, id)
	cache.InvalidateAllCommunities(ctx)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := readDB(r.db).WithContext(ctx).
		Order("full_name ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// Search matches full_name case-insensitively, ordered by name, at most SearchLimit rows.
func (r *userRepository) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	results := make([]models.UserSummary, 0)
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.User{}).
		Select("id", "full_name", "email", "user_type").
		Where("LOWER(full_name) LIKE ? ESCAPE '\\'", pattern).
		Order("full_name ASC").
		Limit(SearchLimit).
		Scan(&results).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return results, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
