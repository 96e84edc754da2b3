package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rolo/internal/contacts/domain"
)

// ContactOption configures a test contact.
type ContactOption func(*domain.Contact)

// Address sets the street address.
func Address(address string) ContactOption {
	return func(c *domain.Contact) { c.Address = address }
}

// City sets the city.
func City(city string) ContactOption {
	return func(c *domain.Contact) { c.City = city }
}

// State sets the state.
func State(state string) ContactOption {
	return func(c *domain.Contact) { c.State = state }
}

// Zip sets the zip code.
func Zip(zip string) ContactOption {
	return func(c *domain.Contact) { c.ZipCode = zip }
}

// Phone sets the phone number.
func Phone(phone string) ContactOption {
	return func(c *domain.Contact) { c.Phone = phone }
}

// Email sets the email address.
func Email(email string) ContactOption {
	return func(c *domain.Contact) { c.Email = email }
}

// Contact creates a test contact with optional configuration.
func Contact(first, last string, opts ...ContactOption) *domain.Contact {
	c := domain.NewContact(first, last, "", "", "", "", "", "")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Builder accumulates books and contacts and loads them into a store.
type Builder struct {
	t     *testing.T
	store domain.RegistryStore
	books []string
	byID  map[string][]*domain.Contact
}

// NewBuilder creates a builder that seeds the given store.
func NewBuilder(t *testing.T, store domain.RegistryStore) *Builder {
	t.Helper()
	return &Builder{t: t, store: store, byID: make(map[string][]*domain.Contact)}
}

// WithBook adds a book with the given contacts.
func (b *Builder) WithBook(name string, contacts ...*domain.Contact) *Builder {
	b.books = append(b.books, name)
	b.byID[name] = contacts
	return b
}

// Build creates the books in the store and saves their contacts.
func (b *Builder) Build() {
	b.t.Helper()
	for _, name := range b.books {
		require.NoError(b.t, b.store.CreateBook(name))
		book, err := domain.NewRegistry().CreateBook(name)
		require.NoError(b.t, err)
		for _, c := range b.byID[name] {
			require.NoError(b.t, book.Add(c))
		}
		require.NoError(b.t, b.store.SaveBook(name, book))
	}
}

// WithStandardBooks seeds two books with a small cross-city dataset used
// across store and service tests.
func (b *Builder) WithStandardBooks() *Builder {
	return b.
		WithBook("friends",
			Contact("Ann", "Lee", Address("12 Main St"), City("Paris"), State("TX"), Zip("75460"), Phone("555-0100"), Email("ann@example.com")),
			Contact("Bob", "Ray", City("Reno"), State("NV"), Phone("555-0101")),
		).
		WithBook("work",
			Contact("Carol", "Ng", City("Paris"), State("TX"), Email("carol@example.com")),
		)
}
