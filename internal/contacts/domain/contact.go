// Package domain provides the pure domain layer for contact books with no
// infrastructure dependencies.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code (plus uuid generation for contact identity)
//   - Defines the Contact record, the AddressBook collection, and the
//     Registry that owns all books
//   - Defines the RegistryStore interface for persistence abstraction
//   - Provides domain-specific error types
//
// The domain layer has no knowledge of infrastructure concerns (databases,
// file I/O, etc.).
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Contact is a single address-book entry. All fields are free-form text;
// no format validation is applied to any of them.
//
// ID is the stable internal identifier assigned by the owning AddressBook
// (zero until added). The case-folded name key is derived, never stored,
// and is re-indexed whenever a rename happens.
type Contact struct {
	ID   int64
	GUID string

	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	ZipCode   string
	Phone     string
	Email     string
}

// NewContact creates a contact with a fresh GUID and no internal ID.
func NewContact(first, last, address, city, state, zip, phone, email string) *Contact {
	return &Contact{
		GUID:      uuid.NewString(),
		FirstName: first,
		LastName:  last,
		Address:   address,
		City:      city,
		State:     state,
		ZipCode:   zip,
		Phone:     phone,
		Email:     email,
	}
}

// NameKey derives the index key used to locate a contact within one book:
// the case-folded "first last" string.
func NameKey(first, last string) string {
	return strings.ToLower(first) + " " + strings.ToLower(last)
}

// NameKey returns the derived index key for this contact's current name.
func (c *Contact) NameKey() string {
	return NameKey(c.FirstName, c.LastName)
}

// FullName returns the display form "First Last".
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Clone returns an independent copy of the contact.
func (c *Contact) Clone() *Contact {
	dup := *c
	return &dup
}

// Patch is a partial set of field values used to update an existing contact
// without respecifying unchanged fields. A nil field keeps the current
// value; a non-nil field overwrites it, even when it points at an empty
// string. Empty-string overwrites are deliberate: "absent" and "blank" are
// distinct.
type Patch struct {
	FirstName *string
	LastName  *string
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	Phone     *string
	Email     *string
}

// IsZero reports whether the patch carries no fields at all.
func (p Patch) IsZero() bool {
	return p.FirstName == nil && p.LastName == nil && p.Address == nil &&
		p.City == nil && p.State == nil && p.ZipCode == nil &&
		p.Phone == nil && p.Email == nil
}

// Apply overwrites the contact's fields with the patch's non-nil values.
// The contact's ID and GUID are never touched.
func (c *Contact) Apply(p Patch) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.State != nil {
		c.State = *p.State
	}
	if p.ZipCode != nil {
		c.ZipCode = *p.ZipCode
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
}
