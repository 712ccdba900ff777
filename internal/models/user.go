// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the identity that owns posts, comments and ledger entries.
// The core treats users as read-only; accounts are provisioned by the
// external identity system (or the seeder in development).
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"size:63;uniqueIndex;not null" json:"username"`
	FirstName      string         `gorm:"size:63" json:"first_name,omitempty"`
	LastName       string         `gorm:"size:63" json:"last_name,omitempty"`
	HashedPassword string         `gorm:"size:127" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
