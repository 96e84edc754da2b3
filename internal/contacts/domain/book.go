package domain

import (
	"sort"
	"strings"
)

// AddressBook owns the contacts of one named book. Contacts are held under
// a stable internal id; a derived index maps the case-folded name key to
// that id and is updated on rename, so the key invariant (every reachable
// contact is indexed under its current name key) never goes stale.
type AddressBook struct {
	name    string
	nextID  int64
	byID    map[int64]*Contact
	idByKey map[string]int64
	order   []int64 // insertion order of contact ids
}

// NewAddressBook creates an empty book with the given name.
func NewAddressBook(name string) *AddressBook {
	return &AddressBook{
		name:    name,
		byID:    make(map[int64]*Contact),
		idByKey: make(map[string]int64),
	}
}

// Name returns the book's name.
func (b *AddressBook) Name() string {
	return b.name
}

// Len returns the number of contacts in the book.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// Add inserts the contact and assigns its internal id.
// Returns DuplicateContactError when the book already holds a contact with
// the same name key; the book is left unchanged in that case.
func (b *AddressBook) Add(c *Contact) error {
	key := c.NameKey()
	if _, taken := b.idByKey[key]; taken {
		return &DuplicateContactError{First: c.FirstName, Last: c.LastName}
	}
	b.nextID++
	c.ID = b.nextID
	b.byID[c.ID] = c
	b.idByKey[key] = c.ID
	b.order = append(b.order, c.ID)
	return nil
}

// Find returns the contact whose first and last name match the given values
// case-insensitively. When several contacts could match, the earliest-added
// one wins. Returns ContactNotFoundError if nothing matches.
func (b *AddressBook) Find(first, last string) (*Contact, error) {
	for _, id := range b.order {
		c := b.byID[id]
		if strings.EqualFold(c.FirstName, first) && strings.EqualFold(c.LastName, last) {
			return c, nil
		}
	}
	return nil, &ContactNotFoundError{First: first, Last: last}
}

// Edit locates the contact by name and applies the patch. A patch that
// changes the name re-indexes the contact under its new key; a rename that
// would collide with another contact is rejected with DuplicateContactError
// and leaves the book unchanged. Returns ContactNotFoundError if no contact
// matches.
func (b *AddressBook) Edit(first, last string, patch Patch) (*Contact, error) {
	c, err := b.Find(first, last)
	if err != nil {
		return nil, err
	}

	oldKey := c.NameKey()

	// Trial-apply on a copy so a rejected rename is never half-visible.
	updated := *c
	updated.Apply(patch)
	newKey := updated.NameKey()

	if newKey != oldKey {
		if otherID, taken := b.idByKey[newKey]; taken && otherID != c.ID {
			return nil, &DuplicateContactError{First: updated.FirstName, Last: updated.LastName}
		}
	}

	*c = updated
	if newKey != oldKey {
		delete(b.idByKey, oldKey)
		b.idByKey[newKey] = c.ID
	}
	return c, nil
}

// Remove deletes the contact whose name key derives from the given names.
// Returns ContactNotFoundError if no such key exists.
func (b *AddressBook) Remove(first, last string) error {
	key := NameKey(first, last)
	id, ok := b.idByKey[key]
	if !ok {
		return &ContactNotFoundError{First: first, Last: last}
	}
	delete(b.idByKey, key)
	delete(b.byID, id)
	for i, existing := range b.order {
		if existing == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Contacts returns a snapshot of all contacts in insertion order. Calling
// it repeatedly without mutation yields the same sequence.
func (b *AddressBook) Contacts() []*Contact {
	out := make([]*Contact, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return out
}

// SearchBy returns all contacts whose city or state matches the value
// case-insensitively, in insertion order. Only FieldCity and FieldState are
// searchable; other fields yield UnknownFieldError.
func (b *AddressBook) SearchBy(field Field, value string) ([]*Contact, error) {
	if field != FieldCity && field != FieldState {
		return nil, &UnknownFieldError{Field: string(field)}
	}
	var out []*Contact
	for _, id := range b.order {
		c := b.byID[id]
		if strings.EqualFold(field.valueOf(c), value) {
			out = append(out, c)
		}
	}
	return out, nil
}

// SortBy returns all contacts ordered by a case-insensitive ascending
// comparison on the named field. The sort is stable, so ties keep their
// insertion order. FieldName sorts by first name with last name as the
// secondary key.
func (b *AddressBook) SortBy(field Field) ([]*Contact, error) {
	out := b.Contacts()
	if err := sortContacts(out, field); err != nil {
		return nil, err
	}
	return out, nil
}

// sortContacts stably sorts the slice in place by the given field.
func sortContacts(cs []*Contact, field Field) error {
	switch field {
	case FieldName:
		sort.SliceStable(cs, func(i, j int) bool {
			fi := strings.ToLower(cs[i].FirstName)
			fj := strings.ToLower(cs[j].FirstName)
			if fi != fj {
				return fi < fj
			}
			return strings.ToLower(cs[i].LastName) < strings.ToLower(cs[j].LastName)
		})
	case FieldFirstName, FieldLastName, FieldAddress, FieldCity, FieldState,
		FieldZipCode, FieldPhone, FieldEmail:
		sort.SliceStable(cs, func(i, j int) bool {
			return strings.ToLower(field.valueOf(cs[i])) < strings.ToLower(field.valueOf(cs[j]))
		})
	default:
		return &UnknownFieldError{Field: string(field)}
	}
	return nil
}
