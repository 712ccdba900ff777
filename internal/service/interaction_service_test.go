package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ledgerRepoStub is a stub for repository.LedgerRepository.
type ledgerRepoStub struct {
	likeFn       func(context.Context, uint, models.TargetKind, uint) (*models.Like, error)
	unlikeFn     func(context.Context, uint, models.TargetKind, uint) error
	isLikedFn    func(context.Context, uint, models.TargetKind, uint) (bool, error)
	countLikesFn func(context.Context, models.TargetKind, uint) (int64, error)
	repostFn     func(context.Context, uint, uint) (*models.Repost, error)
	unrepostFn   func(context.Context, uint, uint) error
	saveFn       func(context.Context, uint, uint) (*models.Save, error)
	unsaveFn     func(context.Context, uint, uint) error
}

func (s *ledgerRepoStub) Like(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Like, error) {
	return s.likeFn(ctx, userID, kind, targetID)
}
func (s *ledgerRepoStub) Unlike(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) error {
	return s.unlikeFn(ctx, userID, kind, targetID)
}
func (s *ledgerRepoStub) IsLiked(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, kind, targetID)
}
func (s *ledgerRepoStub) CountLikes(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error) {
	return s.countLikesFn(ctx, kind, targetID)
}
func (s *ledgerRepoStub) Repost(ctx context.Context, userID, postID uint) (*models.Repost, error) {
	return s.repostFn(ctx, userID, postID)
}
func (s *ledgerRepoStub) Unrepost(ctx context.Context, userID, postID uint) error {
	return s.unrepostFn(ctx, userID, postID)
}
func (s *ledgerRepoStub) SavePost(ctx context.Context, userID, postID uint) (*models.Save, error) {
	return s.saveFn(ctx, userID, postID)
}
func (s *ledgerRepoStub) UnsavePost(ctx context.Context, userID, postID uint) error {
	return s.unsaveFn(ctx, userID, postID)
}

func noopLedgerRepo() *ledgerRepoStub {
	return &ledgerRepoStub{
		likeFn: func(_ context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Like, error) {
			return &models.Like{ID: 1, UserID: userID, TargetKind: kind, TargetID: targetID}, nil
		},
		unlikeFn:     func(_ context.Context, _ uint, _ models.TargetKind, _ uint) error { return nil },
		isLikedFn:    func(_ context.Context, _ uint, _ models.TargetKind, _ uint) (bool, error) { return false, nil },
		countLikesFn: func(_ context.Context, _ models.TargetKind, _ uint) (int64, error) { return 0, nil },
		repostFn: func(_ context.Context, userID, postID uint) (*models.Repost, error) {
			return &models.Repost{ID: 1, UserID: userID, PostID: postID}, nil
		},
		unrepostFn: func(_ context.Context, _, _ uint) error { return nil },
		saveFn: func(_ context.Context, userID, postID uint) (*models.Save, error) {
			return &models.Save{ID: 1, UserID: userID, PostID: postID}, nil
		},
		unsaveFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestInteractionService_Like(t *testing.T) {
	t.Parallel()

	t.Run("post target", func(t *testing.T) {
		t.Parallel()
		svc := NewInteractionService(noopLedgerRepo(), noopPostRepo(), noopCommentRepo())
		like, err := svc.Like(context.Background(), 7, models.TargetPost, 1)
		require.NoError(t, err)
		assert.Equal(t, models.TargetPost, like.TargetKind)
	})

	t.Run("comment target", func(t *testing.T) {
		t.Parallel()
		svc := NewInteractionService(noopLedgerRepo(), noopPostRepo(), noopCommentRepo())
		like, err := svc.Like(context.Background(), 7, models.TargetComment, 5)
		require.NoError(t, err)
		assert.Equal(t, models.TargetComment, like.TargetKind)
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewInteractionService(noopLedgerRepo(), postRepo, noopCommentRepo())
		_, err := svc.Like(context.Background(), 7, models.TargetPost, 99)
		assertNotFoundError(t, err)
	})

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()
		svc := NewInteractionService(noopLedgerRepo(), noopPostRepo(), noopCommentRepo())
		_, err := svc.Like(context.Background(), 7, "stream", 1)
		assertValidationError(t, err)
	})

	t.Run("conflict from ledger passes through", func(t *testing.T) {
		t.Parallel()
		ledger := noopLedgerRepo()
		ledger.likeFn = func(_ context.Context, _ uint, _ models.TargetKind, _ uint) (*models.Like, error) {
			return nil, models.NewConflictError("post 1 is already liked")
		}
		svc := NewInteractionService(ledger, noopPostRepo(), noopCommentRepo())
		_, err := svc.Like(context.Background(), 7, models.TargetPost, 1)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})
}

func TestInteractionService_Unlike(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ledger", func(t *testing.T) {
		t.Parallel()
		var gotUser uint
		ledger := noopLedgerRepo()
		ledger.unlikeFn = func(_ context.Context, userID uint, _ models.TargetKind, _ uint) error {
			gotUser = userID
			return nil
		}
		svc := NewInteractionService(ledger, noopPostRepo(), noopCommentRepo())
		require.NoError(t, svc.Unlike(context.Background(), 7, models.TargetPost, 1))
		assert.Equal(t, uint(7), gotUser)
	})

	t.Run("absent ledger row surfaces not found", func(t *testing.T) {
		t.Parallel()
		ledger := noopLedgerRepo()
		ledger.unlikeFn = func(_ context.Context, _ uint, _ models.TargetKind, _ uint) error {
			return models.NewNotFoundError("like on post", 1)
		}
		svc := NewInteractionService(ledger, noopPostRepo(), noopCommentRepo())
		err := svc.Unlike(context.Background(), 7, models.TargetPost, 1)
		assertNotFoundError(t, err)
	})
}

func TestInteractionService_RepostAndSave(t *testing.T) {
	t.Parallel()

	t.Run("repost checks post exists", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewInteractionService(noopLedgerRepo(), postRepo, noopCommentRepo())
		_, err := svc.Repost(context.Background(), 7, 99)
		assertNotFoundError(t, err)
	})

	t.Run("save round trip", func(t *testing.T) {
		t.Parallel()
		svc := NewInteractionService(noopLedgerRepo(), noopPostRepo(), noopCommentRepo())
		save, err := svc.SavePost(context.Background(), 7, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), save.PostID)
		require.NoError(t, svc.UnsavePost(context.Background(), 7, 1))
	})
}
