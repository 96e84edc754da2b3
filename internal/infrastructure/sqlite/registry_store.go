package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/log"
)

// contactColumns is the list of columns to select for contact queries.
const contactColumns = `id, book_id, guid, name_key, first_name, last_name,
	address, city, state, zip_code, phone, email, position, created_at, updated_at`

// registryStore implements domain.RegistryStore using SQLite.
type registryStore struct {
	db *sql.DB
}

func newRegistryStore(db *sql.DB) *registryStore {
	return &registryStore{db: db}
}

var _ domain.RegistryStore = (*registryStore)(nil)

// scanContact scans a row into a contactModel.
func scanContact(scanner interface{ Scan(...any) error }) (*contactModel, error) {
	var m contactModel
	err := scanner.Scan(
		&m.ID, &m.BookID, &m.GUID, &m.NameKey, &m.FirstName, &m.LastName,
		&m.Address, &m.City, &m.State, &m.ZipCode, &m.Phone, &m.Email,
		&m.Position, &m.CreatedAt, &m.UpdatedAt,
	)
	return &m, err
}

// LoadRegistry reads every book and its contacts into a fresh Registry.
// Books load in creation order (row id) and contacts in insertion order
// (position), so the in-memory ordering matches what was saved.
func (s *registryStore) LoadRegistry() (*domain.Registry, error) {
	reg := domain.NewRegistry()

	rows, err := s.db.Query(`SELECT id, name FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type bookRow struct {
		id   int64
		name string
	}
	var books []bookRow
	for rows.Next() {
		var b bookRow
		if err := rows.Scan(&b.id, &b.name); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating book rows: %w", err)
	}

	for _, b := range books {
		book, err := reg.CreateBook(b.name)
		if err != nil {
			return nil, fmt.Errorf("restoring book %q: %w", b.name, err)
		}
		if err := s.loadContacts(b.id, book); err != nil {
			return nil, fmt.Errorf("loading contacts for book %q: %w", b.name, err)
		}
	}

	log.Debug(log.CatDB, "Loaded registry", "books", reg.Len())
	return reg, nil
}

// loadContacts fills a book with its stored contacts in insertion order.
func (s *registryStore) loadContacts(bookID int64, book *domain.AddressBook) error {
	rows, err := s.db.Query(
		`SELECT `+contactColumns+` FROM contacts WHERE book_id = ? ORDER BY position`,
		bookID,
	)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		model, err := scanContact(rows)
		if err != nil {
			return fmt.Errorf("scanning contact row: %w", err)
		}
		if err := book.Add(model.toDomain()); err != nil {
			// The unique (book_id, name_key) index makes this unreachable
			// for an intact database.
			return fmt.Errorf("restoring contact %q: %w", model.NameKey, err)
		}
	}
	return rows.Err()
}

// CreateBook persists a new empty book.
func (s *registryStore) CreateBook(name string) error {
	var existing int64
	err := s.db.QueryRow(`SELECT id FROM books WHERE name = ?`, name).Scan(&existing)
	if err == nil {
		return &domain.BookExistsError{Name: name}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for book %q: %w", name, err)
	}

	if _, err := s.db.Exec(
		`INSERT INTO books (name, created_at) VALUES (?, ?)`,
		name, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("inserting book %q: %w", name, err)
	}
	log.Info(log.CatDB, "Created book", "name", name)
	return nil
}

// DeleteBook removes the book row and all of its contacts in one
// transaction.
func (s *registryStore) DeleteBook(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := bookID(tx, name)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM contacts WHERE book_id = ?`, id); err != nil {
		return fmt.Errorf("deleting contacts of book %q: %w", name, err)
	}
	if _, err := tx.Exec(`DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting book %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	log.Info(log.CatDB, "Deleted book", "name", name)
	return nil
}

// SaveBook atomically replaces the stored contents of the named book with
// the book's current contacts. Either every row lands or none do.
func (s *registryStore) SaveBook(name string, book *domain.AddressBook) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := bookID(tx, name)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM contacts WHERE book_id = ?`, id); err != nil {
		return fmt.Errorf("clearing book %q: %w", name, err)
	}

	for position, c := range book.Contacts() {
		m := toContactModel(id, position, c)
		if _, err := tx.Exec(
			`INSERT INTO contacts (
				book_id, guid, name_key, first_name, last_name,
				address, city, state, zip_code, phone, email,
				position, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.BookID, m.GUID, m.NameKey, m.FirstName, m.LastName,
			m.Address, m.City, m.State, m.ZipCode, m.Phone, m.Email,
			m.Position, m.CreatedAt, m.UpdatedAt,
		); err != nil {
			return fmt.Errorf("inserting contact %q: %w", m.NameKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	log.Debug(log.CatDB, "Saved book", "name", name, "contacts", book.Len())
	return nil
}

// Close releases any resources held by the store.
// This is a no-op because the connection is owned by the DB struct.
func (s *registryStore) Close() error {
	return nil
}

// bookID resolves a book name to its row id within a transaction.
func bookID(tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM books WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.BookNotFoundError{Name: name}
	}
	if err != nil {
		return 0, fmt.Errorf("resolving book %q: %w", name, err)
	}
	return id, nil
}
