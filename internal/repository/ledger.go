package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// LedgerRepository owns the durable set of like/repost/save records and the
// stored counters denormalized from them. Every mutation runs in a single
// transaction: the ledger row and its counter delta commit together or not at
// all, so at every commit boundary the counter equals the row count.
type LedgerRepository interface {
	Like(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Like, error)
	Unlike(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) error
	IsLiked(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, error)
	CountLikes(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error)
	Repost(ctx context.Context, userID, postID uint) (*models.Repost, error)
	Unrepost(ctx context.Context, userID, postID uint) error
	SavePost(ctx context.Context, userID, postID uint) (*models.Save, error)
	UnsavePost(ctx context.Context, userID, postID uint) error
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// The constraint is what makes concurrent duplicate likes fail
// deterministically instead of racing past a check-then-insert.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}

// counterExpr builds the column update for a counter delta. Decrements are
// floored at zero.
func counterExpr(column string, delta int) interface{} {
	if delta > 0 {
		return gorm.Expr(column + " + 1")
	}
	return gorm.Expr("GREATEST(" + column + " - 1, 0)")
}

func (r *ledgerRepository) Like(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Like, error) {
	like := &models.Like{UserID: userID, TargetKind: kind, TargetID: targetID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			if isUniqueViolation(err) {
				observability.LedgerConflicts.WithLabelValues("like").Inc()
				return models.NewConflictError(fmt.Sprintf("%s %d is already liked", kind, targetID))
			}
			return err
		}
		return r.applyLikeDelta(tx, userID, kind, targetID, +1)
	})
	if err != nil {
		return nil, err
	}
	r.invalidateTarget(ctx, kind, targetID)
	return like, nil
}

func (r *ledgerRepository) Unlike(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError(fmt.Sprintf("like on %s", kind), targetID)
		}
		return r.applyLikeDelta(tx, userID, kind, targetID, -1)
	})
	if err != nil {
		return err
	}
	r.invalidateTarget(ctx, kind, targetID)
	return nil
}

// applyLikeDelta adjusts the stored counter for the target inside tx. For
// comments it also keeps author_like in step when the liker is the comment's
// own author. A zero-row update means the target vanished mid-flight; the
// NotFound rolls back the whole transaction, ledger row included.
func (r *ledgerRepository) applyLikeDelta(tx *gorm.DB, userID uint, kind models.TargetKind, targetID uint, delta int) error {
	switch kind {
	case models.TargetPost:
		res := tx.Model(&models.Post{}).
			Where("id = ?", targetID).
			UpdateColumn("likes_count", counterExpr("likes_count", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("post", targetID)
		}
		return nil
	case models.TargetComment:
		var comment models.Comment
		if err := tx.Select("id", "user_id").First(&comment, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("comment", targetID)
			}
			return err
		}
		updates := map[string]interface{}{
			"likes_count": counterExpr("likes_count", delta),
		}
		if comment.UserID == userID {
			updates["author_like"] = delta > 0
		}
		return tx.Model(&models.Comment{}).
			Where("id = ?", targetID).
			UpdateColumns(updates).Error
	default:
		return models.NewValidationError(fmt.Sprintf("unknown target kind %q", kind))
	}
}

func (r *ledgerRepository) IsLiked(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *ledgerRepository) CountLikes(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&count).Error
	return count, err
}

func (r *ledgerRepository) Repost(ctx context.Context, userID, postID uint) (*models.Repost, error) {
	repost := &models.Repost{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(repost).Error; err != nil {
			if isUniqueViolation(err) {
				observability.LedgerConflicts.WithLabelValues("repost").Inc()
				return models.NewConflictError(fmt.Sprintf("post %d is already reposted", postID))
			}
			return err
		}
		return applyPostCounterDelta(tx, "reposts_count", postID, +1)
	})
	if err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return repost, nil
}

func (r *ledgerRepository) Unrepost(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Repost{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("repost of post", postID)
		}
		return applyPostCounterDelta(tx, "reposts_count", postID, -1)
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

func (r *ledgerRepository) SavePost(ctx context.Context, userID, postID uint) (*models.Save, error) {
	save := &models.Save{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(save).Error; err != nil {
			if isUniqueViolation(err) {
				observability.LedgerConflicts.WithLabelValues("save").Inc()
				return models.NewConflictError(fmt.Sprintf("post %d is already saved", postID))
			}
			return err
		}
		return applyPostCounterDelta(tx, "saves_count", postID, +1)
	})
	if err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return save, nil
}

func (r *ledgerRepository) UnsavePost(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Save{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("save of post", postID)
		}
		return applyPostCounterDelta(tx, "saves_count", postID, -1)
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

func applyPostCounterDelta(tx *gorm.DB, column string, postID uint, delta int) error {
	res := tx.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, counterExpr(column, delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", postID)
	}
	return nil
}

func (r *ledgerRepository) invalidateTarget(ctx context.Context, kind models.TargetKind, targetID uint) {
	switch kind {
	case models.TargetPost:
		cache.Invalidate(ctx, cache.PostKey(targetID))
	case models.TargetComment:
		cache.Invalidate(ctx, cache.CommentKey(targetID))
	}
}
