package models

import "time"

// Like is one ledger entry: "user X likes target T". The unique index over
// (user_id, target_kind, target_id) is the hard guarantee that a user cannot
// like the same target twice — concurrent duplicate attempts fail on the
// constraint instead of racing past an application-level check.
//
// Likes are hard-deleted: the set of rows IS the source of truth the stored
// counters must agree with at every commit boundary.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_like_owner_target" json:"user_id"`
	TargetKind TargetKind `gorm:"size:15;not null;uniqueIndex:idx_like_owner_target" json:"target_kind"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_like_owner_target" json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// Repost is a ledger entry backing posts.reposts_count. Same discipline as
// Like: unique per (user, post), hard-deleted, counter updated in the same
// transaction.
type Repost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_repost_owner_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_repost_owner_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Save is a ledger entry backing posts.saves_count.
type Save struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_save_owner_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_save_owner_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
