// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// ListQuery holds the list/search parameters shared by post and comment
// listings: slice [Skip, Skip+Limit) of the items whose content contains
// Search as a case-sensitive substring, ordered by ascending id.
type ListQuery struct {
	Limit  int
	Skip   int
	Search string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, q ListQuery) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postColumns selects the stored columns plus the derived comment count.
// The count is computed per read so it is exact by construction, unlike the
// stored like/repost/save counters which the ledger maintains incrementally.
const postColumns = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.parent_kind = 'post' " +
	"AND comments.parent_id = posts.id AND comments.deleted_at IS NULL) AS comments_count"

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Select(postColumns).
			Preload("User").
			First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// firstPage is the default browse query. It is the hottest read, so its
// result set is cached briefly; every other page goes straight to the DB.
var firstPage = ListQuery{Limit: 10, Skip: 0}

func (r *postRepository) List(ctx context.Context, q ListQuery) ([]*models.Post, error) {
	var posts []*models.Post
	if q == firstPage {
		err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.PostsListTTL, func() error {
			return r.list(ctx, q, &posts)
		})
		return posts, err
	}
	err := r.list(ctx, q, &posts)
	return posts, err
}

func (r *postRepository) list(ctx context.Context, q ListQuery, dest *[]*models.Post) error {
	return r.db.WithContext(ctx).
		Select(postColumns).
		Preload("User").
		Where("content LIKE ?", "%"+q.Search+"%").
		Order("posts.id ASC").
		Limit(q.Limit).
		Offset(q.Skip).
		Find(dest).Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// Only the author-editable columns. The stored counters belong to the
	// ledger transactions; writing the whole struct back would clobber any
	// like/repost/save committed since this post was loaded.
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"content":   post.Content,
			"media_url": post.MediaURL,
		}).Error
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	// No cascade: child comments and ledger rows stay addressable by id.
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidatePostsList(ctx)
	return nil
}
