package domain

// TaggedContact pairs a contact with the name of the book that owns it.
// Cross-book queries return tagged results so callers can tell entries from
// different books apart.
type TaggedContact struct {
	Book    string
	Contact *Contact
}

// Registry owns all address books, keyed by book name. Book names are
// unique; BookNames preserves creation order for deterministic output.
type Registry struct {
	books map[string]*AddressBook
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		books: make(map[string]*AddressBook),
	}
}

// CreateBook creates an empty book under the given name.
// Returns BookExistsError when the name is already taken.
func (r *Registry) CreateBook(name string) (*AddressBook, error) {
	if _, taken := r.books[name]; taken {
		return nil, &BookExistsError{Name: name}
	}
	book := NewAddressBook(name)
	r.books[name] = book
	r.order = append(r.order, name)
	return book, nil
}

// Book returns the named book or BookNotFoundError.
func (r *Registry) Book(name string) (*AddressBook, error) {
	book, ok := r.books[name]
	if !ok {
		return nil, &BookNotFoundError{Name: name}
	}
	return book, nil
}

// BookNames returns all book names in creation order.
func (r *Registry) BookNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of books.
func (r *Registry) Len() int {
	return len(r.order)
}

// DeleteBook removes the named book and everything in it.
// Returns BookNotFoundError if the name is absent.
func (r *Registry) DeleteBook(name string) error {
	if _, ok := r.books[name]; !ok {
		return &BookNotFoundError{Name: name}
	}
	delete(r.books, name)
	for i, existing := range r.order {
		if existing == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// searchAll delegates to every book's SearchBy in creation order and tags
// each hit with its owning book name. The field is fixed by the callers, so
// per-book errors cannot occur.
func (r *Registry) searchAll(field Field, value string) []TaggedContact {
	var out []TaggedContact
	for _, name := range r.order {
		matches, _ := r.books[name].SearchBy(field, value)
		for _, c := range matches {
			out = append(out, TaggedContact{Book: name, Contact: c})
		}
	}
	return out
}

// SearchByCity returns every contact across all books whose city matches
// the value case-insensitively, tagged with its book, in book-creation
// order.
func (r *Registry) SearchByCity(value string) []TaggedContact {
	return r.searchAll(FieldCity, value)
}

// SearchByState is SearchByCity for the state field.
func (r *Registry) SearchByState(value string) []TaggedContact {
	return r.searchAll(FieldState, value)
}

// CountByCity returns the total number of contacts across all books whose
// city matches the value case-insensitively.
func (r *Registry) CountByCity(value string) int {
	return len(r.searchAll(FieldCity, value))
}

// CountByState is CountByCity for the state field.
func (r *Registry) CountByState(value string) int {
	return len(r.searchAll(FieldState, value))
}

// sortAll concatenates every book's contacts in book-creation order, then
// applies one stable sort across the combined sequence. Sorting happens
// across books as a whole, not book by book.
func (r *Registry) sortAll(field Field) []TaggedContact {
	var combined []TaggedContact
	for _, name := range r.order {
		for _, c := range r.books[name].Contacts() {
			combined = append(combined, TaggedContact{Book: name, Contact: c})
		}
	}

	contacts := make([]*Contact, len(combined))
	index := make(map[*Contact]TaggedContact, len(combined))
	for i, tc := range combined {
		contacts[i] = tc.Contact
		index[tc.Contact] = tc
	}
	// Field is fixed by the callers, so the sort cannot fail.
	_ = sortContacts(contacts, field)

	out := make([]TaggedContact, len(contacts))
	for i, c := range contacts {
		out[i] = index[c]
	}
	return out
}

// SortAllByName returns every contact across all books, tagged with its
// book, stably sorted by first name then last name (case-insensitive).
func (r *Registry) SortAllByName() []TaggedContact {
	return r.sortAll(FieldName)
}

// SortAllByCity returns every contact across all books, tagged with its
// book, stably sorted by city (case-insensitive).
func (r *Registry) SortAllByCity() []TaggedContact {
	return r.sortAll(FieldCity)
}
