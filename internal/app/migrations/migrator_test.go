package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sharesuki/internal/db"
)

func TestMigrator_SQLiteUpIsIdempotent(t *testing.T) {
	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	m := NewMigrator(NewSQLiteRunner(database), "sqlite")
	ctx := context.Background()

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002"}, pending)

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	applied, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)

	pending, err = m.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	for _, table := range []string{"skill_records", "notified_pairs"} {
		var name string
		err := database.DB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrator_UnknownDialect(t *testing.T) {
	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = NewMigrator(NewSQLiteRunner(database), "mysql").Up(context.Background())
	assert.Error(t, err)
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("001_create_skill_records.sql"))
}
