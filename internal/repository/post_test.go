package repository

import (
	"context"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMiniredis points the cache package at a miniredis instance for the
// duration of the test.
func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Content: "hello world", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT posts\.\*`).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "likes_count", "comments_count"}).
			AddRow(1, "hello world", 101, 3, 7))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "alice"))

	post, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Content)
	assert.Equal(t, 3, post.LikesCount)
	assert.Equal(t, 7, post.CommentsCount)
	assert.Equal(t, "alice", post.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT posts\.\*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// Search filters by case-sensitive substring, ordered by ascending id.
	mock.ExpectQuery(`SELECT posts\.\*.+content LIKE .+ORDER BY posts\.id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id"}).
			AddRow(1, "first Match", 101).
			AddRow(2, "second Match", 102))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "alice").
			AddRow(102, "bob"))

	posts, err := repo.List(ctx, ListQuery{Limit: 10, Skip: 0, Search: "Match"})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, uint(1), posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update_LeavesCountersAlone(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// The update writes content and media_url only. A like committed between
	// loading this post and saving it must survive: the stale in-memory
	// likes_count must never reach the database.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET "content"=\$1,"media_url"=\$2,"updated_at"=\$3 WHERE id = \$4`).
		WithArgs("edited", "", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(ctx, &models.Post{ID: 5, Content: "edited", LikesCount: 3, RepostsCount: 2})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_FirstPageCached(t *testing.T) {
	mr := setupMiniredis(t)
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT posts\.\*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id"}).
			AddRow(1, "hello world", 101))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "alice"))

	first, err := repo.List(ctx, ListQuery{Limit: 10, Skip: 0})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists(cache.PostsListKey))

	// The second read is served from the cache: no further SQL expected.
	second, err := repo.List(ctx, ListQuery{Limit: 10, Skip: 0})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Content, second[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Creating a post drops the cached page.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(ctx, &models.Post{Content: "more", UserID: 101}))
	assert.False(t, mr.Exists(cache.PostsListKey))
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// Soft delete: sets deleted_at, leaves comments and ledger rows alone.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
