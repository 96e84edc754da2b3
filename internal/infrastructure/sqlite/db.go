// Package sqlite provides the SQLite-backed registry store together with
// database lifecycle management: opening, pre-migration backup, and schema
// migrations.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryPath opens a private in-memory database instead of a file.
const MemoryPath = ":memory:"

// DB owns the database connection and hands out stores bound to it.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (or creates) the database at path and applies pending
// migrations. Parent directories are created with 0700. An existing
// database file is copied to <path>.bak before migrations run, so a failed
// migration never costs data.
func NewDB(path string) (*DB, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		if err := backupExisting(path); err != nil {
			return nil, fmt.Errorf("backing up database: %w", err)
		}
		dsn = "file:" + path + "?_pragma=foreign_keys(1)"
	}

	log.Debug(log.CatDB, "Opening database", "path", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", path)
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One interactive session at a time; a single pooled connection also
	// keeps an in-memory database from splitting across connections.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Failed to ping database", err, "path", path)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Migrations failed", err, "path", path)
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info(log.CatDB, "Connected to database", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// Path returns the database file path ("::memory::" databases return the
// memory marker).
func (d *DB) Path() string {
	return d.path
}

// RegistryStore returns a store bound to this database.
func (d *DB) RegistryStore() domain.RegistryStore {
	return newRegistryStore(d.conn)
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// backupExisting copies an existing database file to <path>.bak.
func backupExisting(path string) error {
	src, err := os.Open(path) //nolint:gosec // G304: path is the user's db path
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) //nolint:gosec // G304: derived from db path
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// runMigrations applies all embedded migrations that have not run yet.
func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	driver, err := newMigrationDriver(conn)
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
