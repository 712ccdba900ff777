package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a top-level content item.
//
// LikesCount, RepostsCount and SavesCount are stored counters maintained in
// lockstep with ledger mutations — they are never recomputed on read.
// CommentsCount is the opposite: derived by aggregate at query time and never
// persisted.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	MediaURL string `json:"media_url,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`

	LikesCount   int `gorm:"not null;default:0" json:"likes_count"`
	RepostsCount int `gorm:"not null;default:0" json:"reposts_count"`
	SavesCount   int `gorm:"not null;default:0" json:"saves_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
