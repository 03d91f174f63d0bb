package books

import (
	"context"
	"database/sql"
	"testing"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/migrations"
	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/chapterprep/chapterprep/pkg/users"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *bun.DB, username string) *models.User {
	t.Helper()

	user, err := users.NewService(db).Create(context.Background(), users.CreateUserOptions{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user
}

func TestCreateBook(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, CreateBookOptions{
		UserID:   bob.ID,
		Title:    "Le Petit Prince",
		Author:   pointerutil.String("Saint-Exupéry"),
		Language: models.LanguageFrench,
	})
	require.NoError(t, err)
	assert.NotZero(t, book.ID)

	stored, err := svc.RetrieveBook(ctx, book.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Le Petit Prince", stored.Title)
	require.NotNil(t, stored.Author)
	assert.Equal(t, "Saint-Exupéry", *stored.Author)
	assert.Equal(t, models.LanguageFrench, stored.Language)
}

func TestCreateBook_EmptyAuthorIsNull(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	bob := createTestUser(t, db, "bob")

	book, err := svc.CreateBook(context.Background(), CreateBookOptions{
		UserID:   bob.ID,
		Title:    "Untitled",
		Author:   pointerutil.String(""),
		Language: models.LanguageEnglish,
	})
	require.NoError(t, err)
	assert.Nil(t, book.Author)
}

func TestRetrieveBook_OtherUser(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	bob := createTestUser(t, db, "bob")
	eve := createTestUser(t, db, "eve")
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, CreateBookOptions{UserID: bob.ID, Title: "Mine", Language: models.LanguageFrench})
	require.NoError(t, err)

	_, foreignErr := svc.RetrieveBook(ctx, book.ID, eve.ID)
	_, absentErr := svc.RetrieveBook(ctx, book.ID+100, eve.ID)

	assert.True(t, errcodes.IsCode(foreignErr, "forbidden"))
	assert.Equal(t, foreignErr.Error(), absentErr.Error())
}

func TestListBooksWithTotal(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	bob := createTestUser(t, db, "bob")
	eve := createTestUser(t, db, "eve")
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.CreateBook(ctx, CreateBookOptions{UserID: bob.ID, Title: title, Language: models.LanguageFrench})
		require.NoError(t, err)
	}
	_, err := svc.CreateBook(ctx, CreateBookOptions{UserID: eve.ID, Title: "Hers", Language: models.LanguageFrench})
	require.NoError(t, err)

	books, total, err := svc.ListBooksWithTotal(ctx, ListBooksOptions{UserID: bob.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, books, 2)
	assert.Equal(t, "Three", books[0].Title)
	assert.Equal(t, "Two", books[1].Title)

	books, _, err = svc.ListBooksWithTotal(ctx, ListBooksOptions{UserID: bob.ID, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "One", books[0].Title)
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	bob := createTestUser(t, db, "bob")
	eve := createTestUser(t, db, "eve")
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, CreateBookOptions{UserID: bob.ID, Title: "Mine", Language: models.LanguageFrench})
	require.NoError(t, err)

	err = svc.DeleteBook(ctx, book.ID, eve.ID)
	assert.True(t, errcodes.IsCode(err, "forbidden"))

	require.NoError(t, svc.DeleteBook(ctx, book.ID, bob.ID))

	_, err = svc.RetrieveBook(ctx, book.ID, bob.ID)
	assert.True(t, errcodes.IsCode(err, "forbidden"))
}
