// Package application wires the contact domain to persistence, caching,
// tracing, and change notification. The CLI and the browse UI only ever
// talk to the Service; the domain types never see infrastructure.
package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/rolo/internal/cachemanager"
	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/log"
	"github.com/zjrosen/rolo/internal/pubsub"
	"github.com/zjrosen/rolo/internal/tracing"
)

// searchTTL bounds how long cross-book query results stay cached. Any
// mutation flushes the cache immediately; the TTL only matters when an
// outside process writes the database behind our back.
const searchTTL = 5 * time.Minute

// Service owns the loaded registry and keeps it consistent with the store:
// every mutation persists the affected book before it is observable, and a
// failed save rolls the in-memory registry back to the last persisted
// state.
type Service struct {
	store    domain.RegistryStore
	registry *domain.Registry
	cache    cachemanager.CacheManager[string, []domain.TaggedContact]
	broker   *pubsub.Broker[string]
	tracer   trace.Tracer
}

// NewService loads the registry from the store. A nil tracer disables
// tracing.
func NewService(store domain.RegistryStore, tracer trace.Tracer) (*Service, error) {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	registry, err := store.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	return &Service{
		store:    store,
		registry: registry,
		cache: cachemanager.NewInMemoryCacheManager[string, []domain.TaggedContact](
			"registry-search", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		broker: pubsub.NewBroker[string](),
		tracer: tracer,
	}, nil
}

// Subscribe returns a channel of change events. The payload is the name of
// the book that changed. The channel closes when ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[string] {
	return s.broker.Subscribe(ctx)
}

// Reload replaces the in-memory registry with the store's current state.
// The browse UI calls this when the database file changes on disk.
func (s *Service) Reload(ctx context.Context) error {
	registry, err := s.store.LoadRegistry()
	if err != nil {
		return fmt.Errorf("reloading registry: %w", err)
	}
	s.registry = registry
	_ = s.cache.Flush(ctx)
	return nil
}

// Close shuts down the broker and releases the store.
func (s *Service) Close() error {
	s.broker.Close()
	return s.store.Close()
}

// rollback restores the in-memory registry from the last persisted state
// after a failed save, so callers never observe a half-applied mutation.
func (s *Service) rollback(saveErr error) error {
	registry, loadErr := s.store.LoadRegistry()
	if loadErr != nil {
		return fmt.Errorf("%w (rollback also failed: %v)", saveErr, loadErr)
	}
	s.registry = registry
	return saveErr
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, tracing.SpanPrefixRegistry+name, trace.WithAttributes(attrs...))
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// invalidate flushes cached query results and announces a change.
func (s *Service) invalidate(ctx context.Context, event pubsub.EventType, book string) {
	_ = s.cache.Flush(ctx)
	s.broker.Publish(event, book)
}

// CreateBook creates an empty book in the store and the registry.
func (s *Service) CreateBook(ctx context.Context, name string) (err error) {
	ctx, span := s.startSpan(ctx, "create_book", attribute.String(tracing.AttrBookName, name))
	defer func() { finishSpan(span, err) }()

	if _, err = s.registry.Book(name); err == nil {
		return &domain.BookExistsError{Name: name}
	}
	if err = s.store.CreateBook(name); err != nil {
		return err
	}
	if _, err = s.registry.CreateBook(name); err != nil {
		return err
	}
	log.Info(log.CatBook, "Created book", "name", name)
	s.invalidate(ctx, pubsub.CreatedEvent, name)
	return nil
}

// DeleteBook removes the book and its backing rows.
func (s *Service) DeleteBook(ctx context.Context, name string) (err error) {
	ctx, span := s.startSpan(ctx, "delete_book", attribute.String(tracing.AttrBookName, name))
	defer func() { finishSpan(span, err) }()

	if _, err = s.registry.Book(name); err != nil {
		return err
	}
	if err = s.store.DeleteBook(name); err != nil {
		return err
	}
	if err = s.registry.DeleteBook(name); err != nil {
		return err
	}
	log.Info(log.CatBook, "Deleted book", "name", name)
	s.invalidate(ctx, pubsub.DeletedEvent, name)
	return nil
}

// Books returns all book names in creation order.
func (s *Service) Books(ctx context.Context) []string {
	return s.registry.BookNames()
}

// AddContact adds the contact to the named book and persists it.
func (s *Service) AddContact(ctx context.Context, book string, c *domain.Contact) (err error) {
	ctx, span := s.startSpan(ctx, "add_contact",
		attribute.String(tracing.AttrBookName, book),
		attribute.String(tracing.AttrContactFirst, c.FirstName),
		attribute.String(tracing.AttrContactLast, c.LastName),
	)
	defer func() { finishSpan(span, err) }()

	b, err := s.registry.Book(book)
	if err != nil {
		return err
	}
	if err = b.Add(c); err != nil {
		return err
	}
	if err = s.store.SaveBook(book, b); err != nil {
		return s.rollback(err)
	}
	log.Info(log.CatContact, "Added contact", "book", book, "name", c.FullName())
	s.invalidate(ctx, pubsub.UpdatedEvent, book)
	return nil
}

// EditContact applies the patch to the named contact and persists the book.
func (s *Service) EditContact(ctx context.Context, book, first, last string, patch domain.Patch) (c *domain.Contact, err error) {
	ctx, span := s.startSpan(ctx, "edit_contact",
		attribute.String(tracing.AttrBookName, book),
		attribute.String(tracing.AttrContactFirst, first),
		attribute.String(tracing.AttrContactLast, last),
	)
	defer func() { finishSpan(span, err) }()

	b, err := s.registry.Book(book)
	if err != nil {
		return nil, err
	}
	c, err = b.Edit(first, last, patch)
	if err != nil {
		return nil, err
	}
	if err = s.store.SaveBook(book, b); err != nil {
		return nil, s.rollback(err)
	}
	log.Info(log.CatContact, "Edited contact", "book", book, "name", c.FullName())
	s.invalidate(ctx, pubsub.UpdatedEvent, book)
	return c, nil
}

// RemoveContact deletes the named contact and persists the book.
func (s *Service) RemoveContact(ctx context.Context, book, first, last string) (err error) {
	ctx, span := s.startSpan(ctx, "remove_contact",
		attribute.String(tracing.AttrBookName, book),
		attribute.String(tracing.AttrContactFirst, first),
		attribute.String(tracing.AttrContactLast, last),
	)
	defer func() { finishSpan(span, err) }()

	b, err := s.registry.Book(book)
	if err != nil {
		return err
	}
	if err = b.Remove(first, last); err != nil {
		return err
	}
	if err = s.store.SaveBook(book, b); err != nil {
		return s.rollback(err)
	}
	log.Info(log.CatContact, "Removed contact", "book", book, "name", first+" "+last)
	s.invalidate(ctx, pubsub.UpdatedEvent, book)
	return nil
}

// FindContact looks up a contact by name within one book.
func (s *Service) FindContact(ctx context.Context, book, first, last string) (*domain.Contact, error) {
	b, err := s.registry.Book(book)
	if err != nil {
		return nil, err
	}
	return b.Find(first, last)
}

// ListContacts returns the book's contacts in insertion order.
func (s *Service) ListContacts(ctx context.Context, book string) ([]*domain.Contact, error) {
	b, err := s.registry.Book(book)
	if err != nil {
		return nil, err
	}
	return b.Contacts(), nil
}

// SortContacts returns the book's contacts stably sorted by the field.
func (s *Service) SortContacts(ctx context.Context, book string, field domain.Field) ([]*domain.Contact, error) {
	b, err := s.registry.Book(book)
	if err != nil {
		return nil, err
	}
	return b.SortBy(field)
}

// SearchBook searches one book by city or state.
func (s *Service) SearchBook(ctx context.Context, book string, field domain.Field, value string) ([]*domain.Contact, error) {
	b, err := s.registry.Book(book)
	if err != nil {
		return nil, err
	}
	return b.SearchBy(field, value)
}

// searchAll serves cross-book searches through the cache.
func (s *Service) searchAll(ctx context.Context, field domain.Field, value string) []domain.TaggedContact {
	key := string(field) + ":" + strings.ToLower(value)
	if hits, ok := s.cache.Get(ctx, key); ok {
		return hits
	}

	ctx, span := s.startSpan(ctx, "search_all",
		attribute.String(tracing.AttrSearchField, string(field)),
		attribute.String(tracing.AttrSearchValue, value),
	)
	var hits []domain.TaggedContact
	switch field {
	case domain.FieldCity:
		hits = s.registry.SearchByCity(value)
	case domain.FieldState:
		hits = s.registry.SearchByState(value)
	}
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(hits)))
	span.End()

	s.cache.Set(ctx, key, hits, searchTTL)
	return hits
}

// SearchByCity returns all contacts across books whose city matches,
// tagged with their book names.
func (s *Service) SearchByCity(ctx context.Context, value string) []domain.TaggedContact {
	return s.searchAll(ctx, domain.FieldCity, value)
}

// SearchByState is SearchByCity for the state field.
func (s *Service) SearchByState(ctx context.Context, value string) []domain.TaggedContact {
	return s.searchAll(ctx, domain.FieldState, value)
}

// CountByCity returns the number of matches a city search would yield.
func (s *Service) CountByCity(ctx context.Context, value string) int {
	return len(s.searchAll(ctx, domain.FieldCity, value))
}

// CountByState is CountByCity for the state field.
func (s *Service) CountByState(ctx context.Context, value string) int {
	return len(s.searchAll(ctx, domain.FieldState, value))
}

// SortAllByName returns every contact across books, tagged, sorted by
// first then last name.
func (s *Service) SortAllByName(ctx context.Context) []domain.TaggedContact {
	_, span := s.startSpan(ctx, "sort_all", attribute.String(tracing.AttrSortField, "name"))
	defer span.End()
	return s.registry.SortAllByName()
}

// SortAllByCity returns every contact across books, tagged, sorted by
// city.
func (s *Service) SortAllByCity(ctx context.Context) []domain.TaggedContact {
	_, span := s.startSpan(ctx, "sort_all", attribute.String(tracing.AttrSortField, "city"))
	defer span.End()
	return s.registry.SortAllByCity()
}

// ImportContacts adds a batch of contacts to the named book and persists
// once. The whole batch is rejected on the first duplicate, so an import
// never lands halfway.
func (s *Service) ImportContacts(ctx context.Context, book string, contacts []*domain.Contact) (n int, err error) {
	ctx, span := s.startSpan(ctx, "import_contacts", attribute.String(tracing.AttrBookName, book))
	defer func() { finishSpan(span, err) }()

	b, err := s.registry.Book(book)
	if err != nil {
		return 0, err
	}
	for _, c := range contacts {
		if err = b.Add(c); err != nil {
			return 0, s.rollback(err)
		}
	}
	if err = s.store.SaveBook(book, b); err != nil {
		return 0, s.rollback(err)
	}
	log.Info(log.CatTransfer, "Imported contacts", "book", book, "count", len(contacts))
	s.invalidate(ctx, pubsub.UpdatedEvent, book)
	return len(contacts), nil
}
