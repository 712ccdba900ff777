package models

import (
	"time"

	"gorm.io/gorm"
)

// TargetKind discriminates what a comment hangs off of and what a ledger
// entry points at: a post or another comment.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// Comment is a reply to a post or to another comment. The parent is a tagged
// reference (ParentKind + ParentID) rather than two near-identical tables.
//
// LikesCount is a stored counter maintained by the ledger. AuthorLike is true
// while the comment's own author holds a like on it.
type Comment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user"`
	ParentKind TargetKind `gorm:"size:15;not null;index:idx_comment_parent" json:"parent_kind"`
	ParentID   uint       `gorm:"not null;index:idx_comment_parent" json:"parent_id"`

	LikesCount int  `gorm:"not null;default:0" json:"likes_count"`
	AuthorLike bool `gorm:"not null;default:false" json:"author_like"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
