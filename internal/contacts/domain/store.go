package domain

// RegistryStore defines the persistence interface for the contact registry.
// Implementations may use SQLite, in-memory storage, or other backends.
//
// The store persists whole books: a mutating operation loads its book into
// memory, applies the change there, and saves the book back in one atomic
// step, so a failed write never leaves a partially-written book behind.
type RegistryStore interface {
	// LoadRegistry reads every book and its contacts into a fresh Registry.
	// Books come back in creation order and contacts in insertion order.
	LoadRegistry() (*Registry, error)

	// CreateBook persists a new empty book.
	// Returns BookExistsError when the name is already taken.
	CreateBook(name string) error

	// DeleteBook removes the book and all of its contacts.
	// Returns BookNotFoundError if the name is absent.
	DeleteBook(name string) error

	// SaveBook atomically replaces the stored contents of the named book
	// with the book's current contacts.
	// Returns BookNotFoundError if the book was never created.
	SaveBook(name string, book *AddressBook) error

	// Close releases any resources held by the store.
	Close() error
}
