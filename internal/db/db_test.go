package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_EnforcesForeignKeys(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(
		`INSERT INTO visits (id, study_id, title, ord, is_hidden, created_at, updated_at)
		 VALUES ('v1', 'missing', 'V', 0, 0, '', '')`)
	assert.Error(t, err, "orphan visit rows are rejected")
}

func TestOpenDB_ForeignKeysOnEveryConnection(t *testing.T) {
	database, err := OpenDB(filepath.Join(t.TempDir(), "studies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Hold several connections open at once so the pool cannot reuse one.
	ctx := context.Background()
	conns := make([]*sql.Conn, 3)
	for i := range conns {
		conn, err := database.Conn(ctx)
		require.NoError(t, err)
		conns[i] = conn
	}

	for i, conn := range conns {
		var on int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&on))
		assert.Equal(t, 1, on, "connection %d", i)
		conn.Close()
	}
}
