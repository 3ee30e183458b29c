package models

import "time"

// Job is a posting created by an alumni user.
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Company     string    `gorm:"size:120;not null" json:"company"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"size:120;not null" json:"location"`
	PostedByID  uint      `gorm:"not null;index" json:"postedById"`
	PostedBy    *User     `gorm:"foreignKey:PostedByID;constraint:OnDelete:CASCADE" json:"postedBy,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// JobApplication records that a user applied for a job. One row per (user, job).
type JobApplication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_job_applications_user_job" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_job_applications_user_job;index" json:"jobId"`
	Job       *Job      `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppliedJob is the projection returned by the applied-jobs lookup.
type AppliedJob struct {
	JobID uint `json:"jobId"`
}
