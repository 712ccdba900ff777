package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context, q ListQuery) ([]*models.Comment, error)
	ListByParent(ctx context.Context, kind models.TargetKind, parentID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if err == nil && comment.ParentKind == models.TargetPost {
		// The parent post's derived comment count changed.
		cache.Invalidate(ctx, cache.PostKey(comment.ParentID))
	}
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := cache.Aside(ctx, cache.CommentKey(id), &comment, cache.CommentTTL, func() error {
		return r.db.WithContext(ctx).Preload("User").First(&comment, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context, q ListQuery) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("content LIKE ?", "%"+q.Search+"%").
		Order("comments.id ASC").
		Limit(q.Limit).
		Offset(q.Skip).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByParent(ctx context.Context, kind models.TargetKind, parentID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_kind = ? AND parent_id = ?", kind, parentID).
		Order("comments.id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	// Content only. likes_count and author_like are maintained by the ledger
	// transactions and must not be written back from this snapshot.
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{"content": comment.Content}).Error
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.CommentKey(comment.ID))
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	// No cascade: replies and ledger rows referencing this comment remain.
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.CommentKey(comment.ID))
	if comment.ParentKind == models.TargetPost {
		// The parent post's derived comment count changed.
		cache.Invalidate(ctx, cache.PostKey(comment.ParentID))
	}
	return nil
}
