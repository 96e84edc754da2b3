// Package browse provides the interactive contact browser. It shows one
// address book at a time as a scrollable, filterable list and refreshes
// itself when the database changes underneath it.
package browse

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rolo/internal/contacts/application"
	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/infrastructure/sqlite"
	"github.com/zjrosen/rolo/internal/log"
	"github.com/zjrosen/rolo/internal/pubsub"
	"github.com/zjrosen/rolo/internal/watcher"
)

// Config holds the browser's startup options.
type Config struct {
	DBPath              string
	DefaultBook         string
	AutoRefresh         bool
	AutoRefreshDebounce time.Duration
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	statusStyle    = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).PaddingLeft(1)
)

// dbChangedMsg signals an external write to the database file.
type dbChangedMsg struct{}

// contactItem adapts a contact to the bubbles list item interface.
type contactItem struct {
	contact *domain.Contact
}

func (i contactItem) Title() string {
	return i.contact.FullName()
}

func (i contactItem) Description() string {
	desc := i.contact.City
	if i.contact.State != "" {
		if desc != "" {
			desc += ", "
		}
		desc += i.contact.State
	}
	if i.contact.Phone != "" {
		if desc != "" {
			desc += " · "
		}
		desc += i.contact.Phone
	}
	if desc == "" {
		desc = i.contact.Email
	}
	return desc
}

func (i contactItem) FilterValue() string {
	return i.contact.FullName() + " " + i.contact.City + " " + i.contact.State
}

// Model is the root browse model.
type Model struct {
	svc    *application.Service
	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc

	books   []string
	bookIdx int
	list    list.Model

	events  <-chan pubsub.Event[string]
	watcher *watcher.Watcher
	watchCh <-chan struct{}

	width  int
	height int
	err    error
}

// New creates the browse model. The initial book is the configured
// default when it exists, otherwise the first book.
func New(svc *application.Service, cfg Config) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()

	m := &Model{
		svc:    svc,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		list:   l,
		events: svc.Subscribe(ctx),
	}
	m.reloadBooks()
	return m
}

// reloadBooks refreshes the book tabs, keeping the current selection when
// it still exists.
func (m *Model) reloadBooks() {
	current := m.currentBook()
	m.books = m.svc.Books(m.ctx)
	m.bookIdx = 0
	for i, name := range m.books {
		if name == current || (current == "" && name == m.cfg.DefaultBook) {
			m.bookIdx = i
			break
		}
	}
	m.reloadContacts()
}

func (m *Model) currentBook() string {
	if m.bookIdx < len(m.books) {
		return m.books[m.bookIdx]
	}
	return ""
}

func (m *Model) reloadContacts() {
	book := m.currentBook()
	if book == "" {
		m.list.SetItems(nil)
		return
	}
	contacts, err := m.svc.ListContacts(m.ctx, book)
	if err != nil {
		m.err = err
		return
	}
	items := make([]list.Item, len(contacts))
	for i, c := range contacts {
		items[i] = contactItem{contact: c}
	}
	m.err = nil
	m.list.SetItems(items)
}

// Init starts the database watcher and the change-event listener.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{pubsub.ListenCmd(m.ctx, m.events)}

	if m.cfg.AutoRefresh && m.cfg.DBPath != sqlite.MemoryPath {
		w, err := watcher.New(watcher.Config{
			DBPath:      m.cfg.DBPath,
			DebounceDur: m.cfg.AutoRefreshDebounce,
		})
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Creating watcher", err)
		} else if ch, err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "Starting watcher", err)
		} else {
			m.watcher = w
			m.watchCh = ch
			cmds = append(cmds, m.waitForDBChange())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForDBChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case _, ok := <-m.watchCh:
			if !ok {
				return nil
			}
			return dbChangedMsg{}
		}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		// Let the list's filter input capture keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "tab", "]":
			if len(m.books) > 0 {
				m.bookIdx = (m.bookIdx + 1) % len(m.books)
				m.reloadContacts()
			}
			return m, nil
		case "shift+tab", "[":
			if len(m.books) > 0 {
				m.bookIdx = (m.bookIdx - 1 + len(m.books)) % len(m.books)
				m.reloadContacts()
			}
			return m, nil
		case "r":
			if err := m.svc.Reload(m.ctx); err != nil {
				m.err = err
			}
			m.reloadBooks()
			return m, nil
		}

	case dbChangedMsg:
		log.Debug(log.CatWatcher, "Database changed on disk, reloading")
		if err := m.svc.Reload(m.ctx); err != nil {
			m.err = err
		}
		m.reloadBooks()
		return m, m.waitForDBChange()

	case pubsub.Event[string]:
		m.reloadBooks()
		return m, pubsub.ListenCmd(m.ctx, m.events)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the book tabs, the contact list, and a status line.
func (m *Model) View() string {
	if len(m.books) == 0 {
		return statusStyle.Render("No address books yet. Create one with: rolo book:create <name>")
	}

	tabs := ""
	for i, name := range m.books {
		style := tabStyle
		if i == m.bookIdx {
			style = activeTabStyle
		}
		tabs += style.Render(name)
	}

	status := statusStyle.Render(fmt.Sprintf("%d contacts · tab: switch book · /: filter · q: quit", len(m.list.Items())))
	if m.err != nil {
		status = errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, m.list.View(), status)
}

// Close stops the watcher and the event subscription. Safe to call more
// than once.
func (m *Model) Close() {
	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "Stopping watcher", err)
		}
		m.watcher = nil
	}
	m.cancel()
}
