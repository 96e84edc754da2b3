package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/infrastructure/memory"
	"github.com/zjrosen/rolo/internal/testutil"
)

func TestStore_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	testutil.NewBuilder(t, store).WithStandardBooks().Build()

	reg, err := store.LoadRegistry()
	require.NoError(t, err)
	require.Equal(t, []string{"friends", "work"}, reg.BookNames())

	friends, err := reg.Book("friends")
	require.NoError(t, err)
	require.Equal(t, "Ann Lee", friends.Contacts()[0].FullName())
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	store := memory.NewStore()
	testutil.NewBuilder(t, store).
		WithBook("friends", testutil.Contact("Ann", "Lee", testutil.City("Reno"))).
		Build()

	reg, err := store.LoadRegistry()
	require.NoError(t, err)
	friends, err := reg.Book("friends")
	require.NoError(t, err)

	// Mutating a loaded contact must not leak into the saved snapshot.
	ann, err := friends.Find("Ann", "Lee")
	require.NoError(t, err)
	ann.City = "Sparks"

	fresh, err := store.LoadRegistry()
	require.NoError(t, err)
	book, err := fresh.Book("friends")
	require.NoError(t, err)
	c, err := book.Find("Ann", "Lee")
	require.NoError(t, err)
	require.Equal(t, "Reno", c.City)
}

func TestStore_DeleteAndDuplicate(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.CreateBook("friends"))

	err := store.CreateBook("friends")
	var exists *domain.BookExistsError
	require.ErrorAs(t, err, &exists)

	require.NoError(t, store.DeleteBook("friends"))
	err = store.DeleteBook("friends")
	var notFound *domain.BookNotFoundError
	require.ErrorAs(t, err, &notFound)
}
