package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID     uint
	ParentKind models.TargetKind
	ParentID   uint
	Content    string
}

type ListCommentsInput struct {
	Limit  int
	Skip   int
	Search string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// checkParent verifies the parent a comment hangs off of exists.
func (s *CommentService) checkParent(ctx context.Context, kind models.TargetKind, id uint) error {
	switch kind {
	case models.TargetPost:
		if _, err := s.postRepo.GetByID(ctx, id); err != nil {
			return translateNotFound(err, "Post", id)
		}
	case models.TargetComment:
		if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
			return translateNotFound(err, "Comment", id)
		}
	default:
		return models.NewValidationError("Invalid parent kind")
	}
	return nil
}

func validateCommentContent(content string) error {
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := s.checkParent(ctx, in.ParentKind, in.ParentID); err != nil {
		return nil, err
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:    in.Content,
		UserID:     in.UserID,
		ParentKind: in.ParentKind,
		ParentID:   in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return comment, nil
	}
	return created, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Comment", id)
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) ([]*models.Comment, error) {
	return s.commentRepo.List(ctx, normalizeListQuery(in.Limit, in.Skip, in.Search))
}

// ListForPost returns the comments attached directly to a post, oldest first.
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, translateNotFound(err, "Post", postID)
	}
	return s.commentRepo.ListByParent(ctx, models.TargetPost, postID)
}

// ListReplies returns the direct replies to a comment, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, translateNotFound(err, "Comment", commentID)
	}
	return s.commentRepo.ListByParent(ctx, models.TargetComment, commentID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, translateNotFound(err, "Comment", in.CommentID)
	}
	if err := verifyOwnership(in.UserID, comment.UserID, "edit"); err != nil {
		return nil, err
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Replies and ledger entries referencing the
// comment are left in place; readers resolve the dangling references.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return translateNotFound(err, "Comment", in.CommentID)
	}
	if err := verifyOwnership(in.UserID, comment.UserID, "delete"); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, comment)
}
