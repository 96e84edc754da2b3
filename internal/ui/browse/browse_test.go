package browse

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rolo/internal/contacts/application"
	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/infrastructure/memory"
)

func newBrowseModel(t *testing.T) (*Model, *application.Service) {
	t.Helper()
	ctx := context.Background()

	svc, err := application.NewService(memory.NewStore(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	require.NoError(t, svc.CreateBook(ctx, "friends"))
	require.NoError(t, svc.CreateBook(ctx, "work"))
	require.NoError(t, svc.AddContact(ctx, "friends",
		domain.NewContact("Ann", "Lee", "12 Main St", "Reno", "NV", "89501", "555-0100", "ann@example.com")))
	require.NoError(t, svc.AddContact(ctx, "work",
		domain.NewContact("Bob", "Ray", "3 Oak Ave", "Paris", "TX", "75460", "555-0101", "bob@example.com")))

	m := New(svc, Config{DefaultBook: "friends"})
	t.Cleanup(m.Close)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(*Model), svc
}

func TestBrowse_ShowsDefaultBook(t *testing.T) {
	m, _ := newBrowseModel(t)

	require.Equal(t, "friends", m.currentBook())
	view := m.View()
	require.Contains(t, view, "friends")
	require.Contains(t, view, "work")
	require.Contains(t, view, "Ann Lee")
	require.NotContains(t, view, "Bob Ray")
}

func TestBrowse_TabSwitchesBook(t *testing.T) {
	m, _ := newBrowseModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*Model)

	require.Equal(t, "work", m.currentBook())
	require.Contains(t, m.View(), "Bob Ray")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(*Model)
	require.Equal(t, "friends", m.currentBook())
}

func TestBrowse_ReloadPicksUpChanges(t *testing.T) {
	m, svc := newBrowseModel(t)

	require.NoError(t, svc.AddContact(context.Background(), "friends",
		domain.NewContact("Cara", "Diaz", "", "Elko", "NV", "", "", "")))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(*Model)
	require.Contains(t, m.View(), "Cara Diaz")
}

func TestBrowse_EmptyRegistry(t *testing.T) {
	svc, err := application.NewService(memory.NewStore(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	m := New(svc, Config{})
	t.Cleanup(m.Close)
	require.Contains(t, m.View(), "book:create")
}

func TestBrowse_DeletedBookFallsBack(t *testing.T) {
	m, svc := newBrowseModel(t)

	require.NoError(t, svc.DeleteBook(context.Background(), "friends"))
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(*Model)

	require.Equal(t, "work", m.currentBook())
	require.Contains(t, m.View(), "Bob Ray")
}
