package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateBook(t *testing.T) {
	reg := NewRegistry()

	book, err := reg.CreateBook("friends")
	require.NoError(t, err)
	require.Equal(t, "friends", book.Name())

	_, err = reg.CreateBook("friends")
	var exists *BookExistsError
	require.ErrorAs(t, err, &exists)
	require.Equal(t, "friends", exists.Name)
}

func TestRegistry_BookLookup(t *testing.T) {
	reg := NewRegistry()
	created, err := reg.CreateBook("friends")
	require.NoError(t, err)

	got, err := reg.Book("friends")
	require.NoError(t, err)
	require.Same(t, created, got)

	_, err = reg.Book("work")
	var notFound *BookNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRegistry_BookNames_CreationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := reg.CreateBook(name)
		require.NoError(t, err)
	}

	require.Equal(t, []string{"zeta", "alpha", "mid"}, reg.BookNames())

	require.NoError(t, reg.DeleteBook("alpha"))
	require.Equal(t, []string{"zeta", "mid"}, reg.BookNames())
	require.Equal(t, 2, reg.Len())

	err := reg.DeleteBook("alpha")
	var notFound *BookNotFoundError
	require.ErrorAs(t, err, &notFound)
}

// seedRegistry builds two books that both contain a contact in Paris.
func seedRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()

	a, err := reg.CreateBook("friends")
	require.NoError(t, err)
	require.NoError(t, a.Add(newContact("Ann", "Lee", "Paris")))
	require.NoError(t, a.Add(newContact("Bob", "Lee", "Reno")))

	b, err := reg.CreateBook("work")
	require.NoError(t, err)
	require.NoError(t, b.Add(newContact("Carol", "Ng", "Paris")))

	return reg
}

func TestRegistry_SearchByCity_TagsBooks(t *testing.T) {
	reg := seedRegistry(t)

	hits := reg.SearchByCity("paris")
	require.Len(t, hits, 2)
	require.Equal(t, "friends", hits[0].Book)
	require.Equal(t, "Ann", hits[0].Contact.FirstName)
	require.Equal(t, "work", hits[1].Book)
	require.Equal(t, "Carol", hits[1].Contact.FirstName)
}

func TestRegistry_CountByCityAndState(t *testing.T) {
	reg := seedRegistry(t)

	require.Equal(t, 2, reg.CountByCity("PARIS"))
	require.Equal(t, 1, reg.CountByCity("Reno"))
	require.Equal(t, 0, reg.CountByCity("Elko"))
	require.Equal(t, 3, reg.CountByState("nv"))
	require.Equal(t, 0, reg.CountByState("OR"), "unused state counts zero")
}

func TestRegistry_SortAllByName_AcrossBooks(t *testing.T) {
	reg := NewRegistry()
	a, err := reg.CreateBook("friends")
	require.NoError(t, err)
	require.NoError(t, a.Add(newContact("Zoe", "Ng", "Reno")))

	b, err := reg.CreateBook("work")
	require.NoError(t, err)
	require.NoError(t, b.Add(newContact("Ann", "Lee", "Reno")))

	sorted := reg.SortAllByName()
	require.Len(t, sorted, 2)
	// Combined sort, not book-by-book: "work"'s Ann comes first.
	require.Equal(t, "Ann", sorted[0].Contact.FirstName)
	require.Equal(t, "work", sorted[0].Book)
	require.Equal(t, "Zoe", sorted[1].Contact.FirstName)
	require.Equal(t, "friends", sorted[1].Book)
}

func TestRegistry_SortAllByCity_StableAcrossBooks(t *testing.T) {
	reg := NewRegistry()
	a, err := reg.CreateBook("friends")
	require.NoError(t, err)
	x := newContact("Xavier", "Ng", "Boston")
	require.NoError(t, a.Add(x))

	b, err := reg.CreateBook("work")
	require.NoError(t, err)
	y := newContact("Yara", "Ok", "Boston")
	require.NoError(t, b.Add(y))
	require.NoError(t, b.Add(newContact("Ann", "Lee", "Albany")))

	sorted := reg.SortAllByCity()
	require.Len(t, sorted, 3)
	require.Equal(t, "Albany", sorted[0].Contact.City)
	// Boston ties keep concatenation order: friends before work.
	require.Same(t, x, sorted[1].Contact)
	require.Same(t, y, sorted[2].Contact)
}
