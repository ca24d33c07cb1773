package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testDB opens a fresh database in a temp directory, closed via t.Cleanup.
func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "wellness.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "wellness.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Equal(t, path, db.Path())
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.migrate())
}
