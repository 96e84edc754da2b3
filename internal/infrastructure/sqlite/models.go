package sqlite

import (
	"time"

	"github.com/zjrosen/rolo/internal/contacts/domain"
)

// contactModel represents a row of the contacts table. Timestamps are Unix
// seconds; position is the contact's insertion rank within its book, which
// is how in-memory order survives a round-trip.
type contactModel struct {
	ID        int64
	BookID    int64
	GUID      string
	NameKey   string
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	ZipCode   string
	Phone     string
	Email     string
	Position  int
	CreatedAt int64
	UpdatedAt int64
}

// toContactModel converts a domain contact to a row for the given book.
func toContactModel(bookID int64, position int, c *domain.Contact) *contactModel {
	now := time.Now().Unix()
	return &contactModel{
		BookID:    bookID,
		GUID:      c.GUID,
		NameKey:   c.NameKey(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Phone:     c.Phone,
		Email:     c.Email,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// toDomain converts a row back to a domain contact. The internal id is left
// zero; the owning AddressBook assigns it on Add.
func (m *contactModel) toDomain() *domain.Contact {
	return &domain.Contact{
		GUID:      m.GUID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Address:   m.Address,
		City:      m.City,
		State:     m.State,
		ZipCode:   m.ZipCode,
		Phone:     m.Phone,
		Email:     m.Email,
	}
}
