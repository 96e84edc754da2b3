package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/testutil"
)

func TestRegistryStore_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := db.RegistryStore()
	testutil.NewBuilder(t, store).WithStandardBooks().Build()

	reg, err := store.LoadRegistry()
	require.NoError(t, err)
	require.Equal(t, []string{"friends", "work"}, reg.BookNames())

	friends, err := reg.Book("friends")
	require.NoError(t, err)
	contacts := friends.Contacts()
	require.Len(t, contacts, 2)

	// Insertion order and every field survive the trip.
	require.Equal(t, "Ann Lee", contacts[0].FullName())
	require.Equal(t, "Bob Ray", contacts[1].FullName())
	require.Equal(t, "12 Main St", contacts[0].Address)
	require.Equal(t, "Paris", contacts[0].City)
	require.Equal(t, "TX", contacts[0].State)
	require.Equal(t, "75460", contacts[0].ZipCode)
	require.Equal(t, "555-0100", contacts[0].Phone)
	require.Equal(t, "ann@example.com", contacts[0].Email)
	require.NotEmpty(t, contacts[0].GUID)
}

func TestRegistryStore_SaveReplacesContents(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := db.RegistryStore()
	testutil.NewBuilder(t, store).WithStandardBooks().Build()

	reg, err := store.LoadRegistry()
	require.NoError(t, err)
	friends, err := reg.Book("friends")
	require.NoError(t, err)

	require.NoError(t, friends.Remove("Ann", "Lee"))
	require.NoError(t, friends.Add(testutil.Contact("Dee", "Fox", testutil.City("Elko"))))
	require.NoError(t, store.SaveBook("friends", friends))

	reloaded, err := store.LoadRegistry()
	require.NoError(t, err)
	book, err := reloaded.Book("friends")
	require.NoError(t, err)
	require.Equal(t, 2, book.Len())
	_, err = book.Find("Ann", "Lee")
	var notFound *domain.ContactNotFoundError
	require.ErrorAs(t, err, &notFound)
	_, err = book.Find("Dee", "Fox")
	require.NoError(t, err)
}

func TestRegistryStore_CreateBookRejectsDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := db.RegistryStore()

	require.NoError(t, store.CreateBook("friends"))
	err := store.CreateBook("friends")
	var exists *domain.BookExistsError
	require.ErrorAs(t, err, &exists)
}

func TestRegistryStore_DeleteBookRemovesContacts(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := db.RegistryStore()
	testutil.NewBuilder(t, store).WithStandardBooks().Build()

	require.NoError(t, store.DeleteBook("friends"))

	reg, err := store.LoadRegistry()
	require.NoError(t, err)
	require.Equal(t, []string{"work"}, reg.BookNames())

	// Recreating the book starts empty; the old contacts are gone.
	require.NoError(t, store.CreateBook("friends"))
	reg, err = store.LoadRegistry()
	require.NoError(t, err)
	book, err := reg.Book("friends")
	require.NoError(t, err)
	require.Equal(t, 0, book.Len())
}

func TestRegistryStore_DeleteMissingBook(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := db.RegistryStore()

	err := store.DeleteBook("nope")
	var notFound *domain.BookNotFoundError
	require.ErrorAs(t, err, &notFound)

	err = store.SaveBook("nope", mustBook(t, "nope"))
	require.ErrorAs(t, err, &notFound)
}

func mustBook(t *testing.T, name string) *domain.AddressBook {
	t.Helper()
	book, err := domain.NewRegistry().CreateBook(name)
	require.NoError(t, err)
	return book
}
