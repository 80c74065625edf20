package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsUpAndDown(t *testing.T) {
	ctx := context.Background()
	conn, err := Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { Close(conn) })

	require.NoError(t, RunMigrations(ctx, conn.DB, "sqlite"))

	var tables []string
	err = conn.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'goose%' AND name NOT LIKE 'sqlite%' ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"signatures", "students", "vault_items", "wall_messages"}, tables)

	// Running again is a no-op.
	require.NoError(t, RunMigrations(ctx, conn.DB, "sqlite"))

	require.NoError(t, MigrateDown(ctx, conn.DB, "sqlite"))
	var count int
	require.NoError(t, conn.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'signatures'`))
	assert.Zero(t, count)
}

func TestUnsupportedDriver(t *testing.T) {
	conn, err := Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { Close(conn) })

	err = RunMigrations(context.Background(), conn.DB, "mysql")
	require.ErrorContains(t, err, "unsupported database driver")
}
