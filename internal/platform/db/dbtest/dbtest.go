// Package dbtest opens throwaway SQLite databases with the application schema.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/config"
	"library-backend/internal/platform/db"
)

// Open returns a migrated SQLite database under t.TempDir().
func Open(t testing.TB) *sql.DB {
	t.Helper()

	conn, err := db.Connect(config.DatabaseConfig{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "library.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Migrate(context.Background(), conn, db.DriverSQLite))
	return conn
}
