package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/infrastructure/memory"
	"github.com/zjrosen/rolo/internal/pubsub"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc, err := NewService(store, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, store
}

func testContact(first, last, city, state string) *domain.Contact {
	return domain.NewContact(first, last, "12 Main St", city, state, "89501", "555-0100", first+"@example.com")
}

func TestService_CreateBookPersists(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.Equal(t, []string{"friends"}, svc.Books(ctx))

	err := svc.CreateBook(ctx, "friends")
	var exists *domain.BookExistsError
	require.ErrorAs(t, err, &exists)

	// A fresh load from the store sees the book too.
	reg, err := store.LoadRegistry()
	require.NoError(t, err)
	require.Equal(t, []string{"friends"}, reg.BookNames())
}

func TestService_AddContactSurvivesReload(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Reno", "NV")))

	require.NoError(t, svc.Reload(ctx))
	c, err := svc.FindContact(ctx, "friends", "ann", "lee")
	require.NoError(t, err)
	require.Equal(t, "Reno", c.City)
}

func TestService_AddDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Reno", "NV")))

	err := svc.AddContact(ctx, "friends", testContact("ANN", "LEE", "Elko", "NV"))
	var dup *domain.DuplicateContactError
	require.ErrorAs(t, err, &dup)

	contacts, err := svc.ListContacts(ctx, "friends")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	require.Equal(t, "Reno", contacts[0].City)
}

func TestService_EditRenameReindexes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Reno", "NV")))

	last := "Cho"
	c, err := svc.EditContact(ctx, "friends", "Ann", "Lee", domain.Patch{LastName: &last})
	require.NoError(t, err)
	require.Equal(t, "Cho", c.LastName)

	_, err = svc.FindContact(ctx, "friends", "Ann", "Lee")
	var notFound *domain.ContactNotFoundError
	require.ErrorAs(t, err, &notFound)

	// The rename survives a reload, so it was persisted under the new key.
	require.NoError(t, svc.Reload(ctx))
	_, err = svc.FindContact(ctx, "friends", "Ann", "Cho")
	require.NoError(t, err)
}

func TestService_RemoveContact(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Reno", "NV")))
	require.NoError(t, svc.RemoveContact(ctx, "friends", "Ann", "Lee"))

	_, err := svc.FindContact(ctx, "friends", "Ann", "Lee")
	var notFound *domain.ContactNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestService_DeleteBook(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.DeleteBook(ctx, "friends"))
	require.Empty(t, svc.Books(ctx))

	err := svc.DeleteBook(ctx, "friends")
	var notFound *domain.BookNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestService_CrossBookSearchAndCount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.CreateBook(ctx, "work"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Paris", "TX")))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Bob", "Lee", "Reno", "NV")))
	require.NoError(t, svc.AddContact(ctx, "work", testContact("Carol", "Ng", "Paris", "TX")))

	hits := svc.SearchByCity(ctx, "paris")
	require.Len(t, hits, 2)
	require.Equal(t, "friends", hits[0].Book)
	require.Equal(t, "work", hits[1].Book)

	require.Equal(t, 2, svc.CountByCity(ctx, "Paris"))
	require.Equal(t, 2, svc.CountByState(ctx, "tx"))
	require.Equal(t, 0, svc.CountByState(ctx, "OR"))
}

func TestService_SearchCacheInvalidatedByMutation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Paris", "TX")))

	require.Equal(t, 1, svc.CountByCity(ctx, "Paris"))

	// A second Paris contact must show up even though the first count
	// primed the cache.
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Bob", "Ray", "Paris", "TX")))
	require.Equal(t, 2, svc.CountByCity(ctx, "Paris"))
}

func TestService_SortAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.CreateBook(ctx, "work"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Zoe", "Ray", "Reno", "NV")))
	require.NoError(t, svc.AddContact(ctx, "work", testContact("Ann", "Lee", "Paris", "TX")))

	byName := svc.SortAllByName(ctx)
	require.Len(t, byName, 2)
	require.Equal(t, "Ann", byName[0].Contact.FirstName)
	require.Equal(t, "Zoe", byName[1].Contact.FirstName)

	byCity := svc.SortAllByCity(ctx)
	require.Equal(t, "Paris", byCity[0].Contact.City)
	require.Equal(t, "Reno", byCity[1].Contact.City)
}

func TestService_ImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Reno", "NV")))

	batch := []*domain.Contact{
		testContact("Bob", "Ray", "Elko", "NV"),
		testContact("Ann", "Lee", "Paris", "TX"), // duplicate
	}
	_, err := svc.ImportContacts(ctx, "friends", batch)
	var dup *domain.DuplicateContactError
	require.ErrorAs(t, err, &dup)

	// Nothing from the batch landed.
	contacts, err := svc.ListContacts(ctx, "friends")
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	n, err := svc.ImportContacts(ctx, "friends", []*domain.Contact{testContact("Bob", "Ray", "Elko", "NV")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

// failingStore wraps a real store and fails SaveBook on demand.
type failingStore struct {
	domain.RegistryStore
	failSave bool
}

func (s *failingStore) SaveBook(name string, book *domain.AddressBook) error {
	if s.failSave {
		return errors.New("disk full")
	}
	return s.RegistryStore.SaveBook(name, book)
}

func TestService_FailedSaveRollsBack(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{RegistryStore: memory.NewStore()}
	svc, err := NewService(store, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Reno", "NV")))

	store.failSave = true
	err = svc.AddContact(ctx, "friends", testContact("Bob", "Ray", "Elko", "NV"))
	require.Error(t, err)

	// The in-memory registry was restored from the last persisted state.
	contacts, err := svc.ListContacts(ctx, "friends")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	require.Equal(t, "Ann", contacts[0].FirstName)
}

func TestService_PublishesChangeEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc, _ := newTestService(t)

	events := svc.Subscribe(ctx)
	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.AddContact(ctx, "friends", testContact("Ann", "Lee", "Reno", "NV")))

	waitEvent := func() pubsub.Event[string] {
		t.Helper()
		select {
		case ev := <-events:
			return ev
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for change event")
			return pubsub.Event[string]{}
		}
	}

	ev := waitEvent()
	require.Equal(t, pubsub.CreatedEvent, ev.Type)
	require.Equal(t, "friends", ev.Payload)

	ev = waitEvent()
	require.Equal(t, pubsub.UpdatedEvent, ev.Type)
	require.Equal(t, "friends", ev.Payload)
}
