package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesFileAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts", "rolo.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Equal(t, path, db.Path())
	_, err = os.Stat(path)
	require.NoError(t, err)

	// Migrations created the schema.
	require.NoError(t, db.RegistryStore().CreateBook("friends"))
}

func TestNewDB_Memory(t *testing.T) {
	db, err := NewDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Equal(t, MemoryPath, db.Path())
	require.NoError(t, db.RegistryStore().CreateBook("friends"))
}

func TestNewDB_BacksUpExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolo.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.RegistryStore().CreateBook("friends"))
	require.NoError(t, db.Close())

	// No backup on first open; the file did not exist yet.
	_, err = os.Stat(path + ".bak")
	require.True(t, os.IsNotExist(err))

	db, err = NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(path + ".bak")
	require.NoError(t, err)

	// Reopening kept the existing data.
	reg, err := db.RegistryStore().LoadRegistry()
	require.NoError(t, err)
	require.Equal(t, []string{"friends"}, reg.BookNames())
}
