// Package presentation converts domain types to output shapes and renders
// them for the CLI.
package presentation

import (
	"github.com/zjrosen/rolo/internal/contacts/domain"
)

// ContactDTO represents one contact for presentation. Internal ids stay
// internal; the GUID is the only identifier that leaves the process.
type ContactDTO struct {
	GUID      string `json:"guid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Book      string `json:"book,omitempty"`
}

// BookDTO represents one address book with its size.
type BookDTO struct {
	Name     string `json:"name"`
	Contacts int    `json:"contacts"`
}

// CountDTO represents the result of a count query.
type CountDTO struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FromContact converts a domain contact to a DTO.
func FromContact(c *domain.Contact) ContactDTO {
	return ContactDTO{
		GUID:      c.GUID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Phone:     c.Phone,
		Email:     c.Email,
	}
}

// FromContacts converts a slice of domain contacts.
func FromContacts(contacts []*domain.Contact) []ContactDTO {
	dtos := make([]ContactDTO, len(contacts))
	for i, c := range contacts {
		dtos[i] = FromContact(c)
	}
	return dtos
}

// FromTagged converts cross-book results, carrying each contact's book
// name.
func FromTagged(tagged []domain.TaggedContact) []ContactDTO {
	dtos := make([]ContactDTO, len(tagged))
	for i, tc := range tagged {
		dto := FromContact(tc.Contact)
		dto.Book = tc.Book
		dtos[i] = dto
	}
	return dtos
}
