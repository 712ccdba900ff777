package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// InteractionService owns the like/repost/save ledger operations. Target
// existence is checked up front so a vanished target reports NotFound instead
// of a foreign key failure; the ledger repository handles atomicity of the
// ledger row and the stored counter.
type InteractionService struct {
	ledgerRepo  repository.LedgerRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewInteractionService(
	ledgerRepo repository.LedgerRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *InteractionService {
	return &InteractionService{
		ledgerRepo:  ledgerRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *InteractionService) checkTarget(ctx context.Context, kind models.TargetKind, id uint) error {
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
		return models.NewValidationError("Invalid target kind")
	}
	return nil
}

// Like records a like for the target and bumps its stored counter. Liking a
// target twice is a conflict, not a toggle.
func (s *InteractionService) Like(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Like, error) {
	if err := s.checkTarget(ctx, kind, targetID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.Like(ctx, userID, kind, targetID)
}

// Unlike removes the caller's like. Only the user who placed a like can
// remove it; absence of the ledger row is NotFound and leaves the counter
// untouched.
func (s *InteractionService) Unlike(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) error {
	if err := s.checkTarget(ctx, kind, targetID); err != nil {
		return err
	}
	return s.ledgerRepo.Unlike(ctx, userID, kind, targetID)
}

func (s *InteractionService) IsLiked(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, error) {
	return s.ledgerRepo.IsLiked(ctx, userID, kind, targetID)
}

func (s *InteractionService) Repost(ctx context.Context, userID, postID uint) (*models.Repost, error) {
	if err := s.checkTarget(ctx, models.TargetPost, postID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.Repost(ctx, userID, postID)
}

func (s *InteractionService) Unrepost(ctx context.Context, userID, postID uint) error {
	if err := s.checkTarget(ctx, models.TargetPost, postID); err != nil {
		return err
	}
	return s.ledgerRepo.Unrepost(ctx, userID, postID)
}

func (s *InteractionService) SavePost(ctx context.Context, userID, postID uint) (*models.Save, error) {
	if err := s.checkTarget(ctx, models.TargetPost, postID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.SavePost(ctx, userID, postID)
}

func (s *InteractionService) UnsavePost(ctx context.Context, userID, postID uint) error {
	if err := s.checkTarget(ctx, models.TargetPost, postID); err != nil {
		return err
	}
	return s.ledgerRepo.UnsavePost(ctx, userID, postID)
}
