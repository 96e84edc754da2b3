// Package memory provides an in-memory RegistryStore. It backs tests and
// ephemeral runs where nothing should touch disk.
package memory

import (
	"fmt"

	"github.com/zjrosen/rolo/internal/contacts/domain"
)

// Store implements domain.RegistryStore with per-book contact snapshots.
// Saved contacts are cloned on the way in and out, so callers can keep
// mutating their live registry without bleeding into "persisted" state.
type Store struct {
	books map[string][]*domain.Contact
	order []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		books: make(map[string][]*domain.Contact),
	}
}

var _ domain.RegistryStore = (*Store)(nil)

// LoadRegistry rebuilds a Registry from the saved snapshots.
func (s *Store) LoadRegistry() (*domain.Registry, error) {
	reg := domain.NewRegistry()
	for _, name := range s.order {
		book, err := reg.CreateBook(name)
		if err != nil {
			return nil, fmt.Errorf("restoring book %q: %w", name, err)
		}
		for _, c := range s.books[name] {
			if err := book.Add(c.Clone()); err != nil {
				return nil, fmt.Errorf("restoring contact %q: %w", c.NameKey(), err)
			}
		}
	}
	return reg, nil
}

// CreateBook records a new empty book.
func (s *Store) CreateBook(name string) error {
	if _, taken := s.books[name]; taken {
		return &domain.BookExistsError{Name: name}
	}
	s.books[name] = nil
	s.order = append(s.order, name)
	return nil
}

// DeleteBook drops the book and its snapshot.
func (s *Store) DeleteBook(name string) error {
	if _, ok := s.books[name]; !ok {
		return &domain.BookNotFoundError{Name: name}
	}
	delete(s.books, name)
	for i, existing := range s.order {
		if existing == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// SaveBook replaces the book's snapshot with clones of its current
// contacts.
func (s *Store) SaveBook(name string, book *domain.AddressBook) error {
	if _, ok := s.books[name]; !ok {
		return &domain.BookNotFoundError{Name: name}
	}
	contacts := book.Contacts()
	snapshot := make([]*domain.Contact, len(contacts))
	for i, c := range contacts {
		snapshot[i] = c.Clone()
	}
	s.books[name] = snapshot
	return nil
}

// Close releases nothing; the store lives in memory.
func (s *Store) Close() error {
	return nil
}
