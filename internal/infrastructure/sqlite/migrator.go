package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/golang-migrate/migrate/v4/database"
)

// migrationDriver adapts our *sql.DB to golang-migrate's database.Driver.
// The stock sqlite drivers that ship with migrate each pin a different Go
// sqlite binding; this adapter keeps the whole module on the one driver we
// already use.
type migrationDriver struct {
	db *sql.DB
}

var _ database.Driver = (*migrationDriver)(nil)

const versionTable = "schema_migrations"

func newMigrationDriver(db *sql.DB) (*migrationDriver, error) {
	d := &migrationDriver{db: db}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *migrationDriver) ensureVersionTable() error {
	_, err := d.db.Exec(
		`CREATE TABLE IF NOT EXISTS ` + versionTable + ` (version BIGINT NOT NULL, dirty BOOLEAN NOT NULL)`,
	)
	if err != nil {
		return fmt.Errorf("creating %s table: %w", versionTable, err)
	}
	return nil
}

// Open is only called when migrate constructs a driver from a URL; this
// driver is always handed over as an instance.
func (d *migrationDriver) Open(string) (database.Driver, error) {
	return nil, errors.New("sqlite migration driver must be used with an instance")
}

func (d *migrationDriver) Close() error {
	// The connection is owned by the DB struct.
	return nil
}

// Lock and Unlock are no-ops: one interactive process at a time.
func (d *migrationDriver) Lock() error   { return nil }
func (d *migrationDriver) Unlock() error { return nil }

func (d *migrationDriver) Run(migration io.Reader) error {
	stmts, err := io.ReadAll(migration)
	if err != nil {
		return fmt.Errorf("reading migration: %w", err)
	}
	if _, err := d.db.Exec(string(stmts)); err != nil {
		return fmt.Errorf("applying migration: %w", err)
	}
	return nil
}

func (d *migrationDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM ` + versionTable); err != nil {
		return fmt.Errorf("clearing %s: %w", versionTable, err)
	}
	if version >= 0 || dirty {
		if _, err := tx.Exec(
			`INSERT INTO `+versionTable+` (version, dirty) VALUES (?, ?)`,
			version, dirty,
		); err != nil {
			return fmt.Errorf("recording migration version: %w", err)
		}
	}
	return tx.Commit()
}

func (d *migrationDriver) Version() (int, bool, error) {
	var version int
	var dirty bool
	err := d.db.QueryRow(`SELECT version, dirty FROM ` + versionTable + ` LIMIT 1`).
		Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return database.NilVersion, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading migration version: %w", err)
	}
	return version, dirty, nil
}

func (d *migrationDriver) Drop() error {
	rows, err := d.db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
	)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	for _, table := range tables {
		if _, err := d.db.Exec(`DROP TABLE IF EXISTS "` + table + `"`); err != nil {
			return fmt.Errorf("dropping table %s: %w", table, err)
		}
	}
	return nil
}
