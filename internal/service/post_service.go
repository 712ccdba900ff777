// Package service contains the business logic layered between HTTP handlers
// and repositories.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

const (
	maxContentLen = 50000

	defaultListLimit = 10
	maxListLimit     = 100
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	MediaURL string
}

type ListPostsInput struct {
	Limit  int
	Skip   int
	Search string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Content  string
	MediaURL string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// normalizeListQuery applies the pagination defaults: limit 10 when unset,
// skip 0, limit capped at 100.
func normalizeListQuery(limit, skip int, search string) repository.ListQuery {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if skip < 0 {
		skip = 0
	}
	return repository.ListQuery{Limit: limit, Skip: skip, Search: search}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post := &models.Post{
		Content:  in.Content,
		MediaURL: in.MediaURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read so the response carries the preloaded author and the derived
	// comment count column.
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return post, nil
	}
	return created, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Post", id)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	return s.postRepo.List(ctx, normalizeListQuery(in.Limit, in.Skip, in.Search))
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, translateNotFound(err, "Post", in.PostID)
	}
	if err := verifyOwnership(in.UserID, post.UserID, "edit"); err != nil {
		return nil, err
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post.Content = in.Content
	post.MediaURL = in.MediaURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Comments and ledger entries referencing the post
// are left in place; readers resolve the dangling references.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return translateNotFound(err, "Post", in.PostID)
	}
	if err := verifyOwnership(in.UserID, post.UserID, "delete"); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, in.PostID)
}
