// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserType is the role enum stored on every user.
type UserType string

const (
	UserTypeStudent UserType = "STUDENT"
	UserTypeAlumni  UserType = "ALUMNI"
	UserTypeAdmin   UserType = "ADMIN"
)

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeStudent, UserTypeAlumni, UserTypeAdmin:
		return true
	}
	return false
}

// User represents an alumni-association member.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"size:120;not null;index" json:"fullName"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Phone          string    `gorm:"size:32" json:"phone"`
	GraduationYear *int      `json:"graduationYear"`
	Language       string    `gorm:"size:120" json:"language"`
	LinkedIn       string    `gorm:"column:linkedin;size:255" json:"linkedin"`
	Skills         string    `gorm:"type:text" json:"skills"`
	UserType       UserType  `gorm:"type:varchar(16);not null;default:'STUDENT';index" json:"userType"`
	Company        string    `gorm:"size:120" json:"company"`
	Location       string    `gorm:"size:120" json:"location"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}

// IsAlumni reports whether the user holds the ALUMNI role.
func (u *User) IsAlumni() bool {
	return u != nil && u.UserType == UserTypeAlumni
}

// UserSummary is the reduced projection returned by directory search.
type UserSummary struct {
	ID       uint     `json:"id"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	UserType UserType `json:"userType"`
}
