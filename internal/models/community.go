package models

import "time"

// Community is a user-created group alumni and students can join.
type Community struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:80;not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	CreatedByID uint              `gorm:"not null;index" json:"createdById"`
	CreatedBy   *User             `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"createdBy,omitempty"`
	Members     []CommunityMember `gorm:"foreignKey:CommunityID" json:"members"`
	Posts       []ActivityPost    `gorm:"foreignKey:CommunityID" json:"posts"`
	// MemberCount is not persisted; computed after loading
	MemberCount int       `gorm:"-" json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CommunityMember maps a user to a community. One row per (user, community).
type CommunityMember struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_community_members_user_community" json:"userId"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CommunityID uint       `gorm:"not null;uniqueIndex:idx_community_members_user_community;index" json:"communityId"`
	Community   *Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
}
