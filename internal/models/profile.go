package models

import (
	"time"
)

// Profile holds a user's developer profile. Each user owns at most one
// profile (unique index on UserID); it is created and updated through the
// upsert operation and removed together with the account.
type Profile struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `gorm:"not null" json:"status"`
	Bio            string       `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string       `json:"github_username,omitempty"`
	Skills         []string     `gorm:"serializer:json" json:"skills"`
	Social         Social       `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education      []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Social holds a profile's social network links. It is embedded so the
// JSON representation always carries a concrete object, never null.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a single work history entry on a profile.
// Entries are listed most-recent-first.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is a single education entry on a profile.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"field_of_study"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
