// Package testutil provides helpers for seeding test databases with
// books and contacts.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rolo/internal/infrastructure/sqlite"
)

// NewTestDB opens a fresh in-memory database with migrations applied.
// It is closed automatically when the test ends.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
