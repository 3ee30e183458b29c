package database

import "alumnihub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters for AutoMigrate: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Job{},
		&models.JobApplication{},
		&models.Event{},
		&models.Community{},
		&models.CommunityMember{},
		&models.ActivityPost{},
		&models.Comment{},
		&models.Like{},
	}
}
