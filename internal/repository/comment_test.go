package repository

import (
	"context"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{
		Content:    "Nice post!",
		UserID:     1,
		ParentKind: models.TargetPost,
		ParentID:   1,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), comment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByParent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE parent_kind = \$1 AND parent_id = \$2.+ORDER BY comments\.id ASC`).
		WithArgs("post", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "parent_kind", "parent_id"}).
			AddRow(1, "Comment 1", 101, "post", 1).
			AddRow(2, "Comment 2", 102, "post", 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "alice").
			AddRow(102, "bob"))

	comments, err := repo.ListByParent(ctx, models.TargetPost, 1)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "Comment 1", comments[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByParent_Replies(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE parent_kind = \$1 AND parent_id = \$2`).
		WithArgs("comment", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "parent_kind", "parent_id"}).
			AddRow(9, "a reply", 101, "comment", 5))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "alice"))

	replies, err := repo.ListByParent(ctx, models.TargetComment, 5)
	require.NoError(t, err)
	assert.Len(t, replies, 1)
	assert.Equal(t, uint(5), replies[0].ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Update_ContentOnly(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// Only content is written: likes_count and author_like belong to the
	// ledger transactions and a stale snapshot must not overwrite them.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "content"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs("edited", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(ctx, &models.Comment{ID: 5, Content: "edited", LikesCount: 9, AuthorLike: true})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, &models.Comment{ID: 1, ParentKind: models.TargetComment, ParentID: 3})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_InvalidatesParentPost(t *testing.T) {
	mr := setupMiniredis(t)
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// A cached parent post carries a derived comments_count; deleting a
	// child comment must drop it along with the comment's own entry.
	require.NoError(t, mr.Set(cache.PostKey(1), `{"id":1,"comments_count":7}`))
	require.NoError(t, mr.Set(cache.CommentKey(5), `{"id":5}`))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, &models.Comment{ID: 5, ParentKind: models.TargetPost, ParentID: 1})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.PostKey(1)))
	assert.False(t, mr.Exists(cache.CommentKey(5)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
