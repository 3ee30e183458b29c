package models

import "time"

// ActivityPost is an entry in the activity feed, optionally scoped to a community.
type ActivityPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	ImageURL    string     `gorm:"size:1024" json:"imageUrl"`
	AuthorID    uint       `gorm:"not null;index" json:"authorId"`
	Author      *User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CommunityID *uint      `gorm:"index" json:"communityId,omitempty"`
	Community   *Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:SET NULL" json:"-"`
	Comments    []Comment  `gorm:"foreignKey:PostID" json:"comments"`
	Likes       []Like     `gorm:"foreignKey:PostID" json:"likes"`
	// LikesCount is not persisted; computed after loading
	LikesCount int `gorm:"-" json:"likesCount"`
	// CommentsCount is not persisted; computed after loading
	CommentsCount int       `gorm:"-" json:"commentsCount"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (ActivityPost) TableName() string {
	return "activity_posts"
}

// Comment is a reply on an activity post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Like marks that a user liked a post. One row per (user, post).
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"postId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
