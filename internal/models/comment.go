package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. Like Post, Name and Avatar are
// denormalized snapshots of the commenter taken when the comment is created.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
