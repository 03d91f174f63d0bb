package migrations

import (
	"context"
	"testing"

	"github.com/chapterprep/chapterprep/pkg/config"
	"github.com/chapterprep/chapterprep/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestBringUpToDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.Len(t, group.Migrations, 2)

	for _, table := range []string{"users", "books", "chapters", "words"} {
		var count int
		err := db.NewSelect().
			TableExpr("sqlite_master").
			ColumnExpr("COUNT(*)").
			Where("type = 'table' AND name = ?", table).
			Scan(ctx, &count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}

	// Running again is a no-op.
	group, err = BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.True(t, group.IsZero())
}

func TestRollback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = BringUpToDate(ctx, db)
	require.NoError(t, err)

	group, err := RollbackLast(ctx, db)
	require.NoError(t, err)
	assert.Len(t, group.Migrations, 2)

	var count int
	err = db.NewSelect().
		TableExpr("sqlite_master").
		ColumnExpr("COUNT(*)").
		Where("type = 'table' AND name IN (?)", bun.In([]string{"users", "words"})).
		Scan(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRollbackLast_NothingApplied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, NewMigrator(db).Init(ctx))

	group, err := RollbackLast(ctx, db)
	require.NoError(t, err)
	assert.True(t, group.IsZero())
}
