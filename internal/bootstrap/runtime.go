package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"alumnihub/internal/cache"
	"alumnihub/internal/config"
	"alumnihub/internal/database"
	"alumnihub/internal/models"
	"alumnihub/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty database with demo data. Ignored in production.
	SeedDemo bool
}

// InitRuntime connects to DB and Redis, provisions the admin account and
// optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := EnsureAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	if opts.SeedDemo && !cfg.IsProduction() {
		if err := seedIfEmpty(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

// EnsureAdmin creates the configured ADMIN user, or promotes an existing
// account with that email. It is a no-op when ADMIN_PASSWORD is empty.
func EnsureAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	if email == "" {
		return errors.New("ADMIN_EMAIL must be set when ADMIN_PASSWORD is provided")
	}
	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = "Association Admin"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created := false
	if err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				FullName: name,
				Email:    email,
				Password: string(hashedPassword),
				UserType: models.UserTypeAdmin,
			}
			created = true
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).Where("id = ?", admin.ID).Updates(map[string]any{
				"user_type": models.UserTypeAdmin,
				"password":  string(hashedPassword),
			}).Error
		}
	}); err != nil {
		return err
	}

	if created {
		log.Printf("admin account created (%s)", email)
	} else {
		log.Printf("admin account ensured (%s)", email)
	}
	return nil
}

func seedIfEmpty(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).Where("user_type <> ?", models.UserTypeAdmin).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Printf("demo seed skipped: %d users already present", n)
		return nil
	}
	_, err := seed.Seed(db, seed.DefaultOptions())
	return err
}
