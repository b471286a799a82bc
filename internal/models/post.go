package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a feed post in the DevConnect application.
// Name and Avatar are snapshots of the author at creation time; they are
// never refreshed from the User record on read.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Likes     []Like         `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments  []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
