package domain

import "fmt"

// ContactNotFoundError indicates that no contact matched the given first
// and last name within a book.
type ContactNotFoundError struct {
	First string
	Last  string
}

func (e *ContactNotFoundError) Error() string {
	return fmt.Sprintf("contact %q not found", e.First+" "+e.Last)
}

// DuplicateContactError indicates that a book already holds a contact with
// the same derived name key. Adds and renames that collide are rejected
// rather than silently overwriting.
type DuplicateContactError struct {
	First string
	Last  string
}

func (e *DuplicateContactError) Error() string {
	return fmt.Sprintf("contact %q already exists", e.First+" "+e.Last)
}

// BookNotFoundError indicates that the registry holds no book with the
// given name.
type BookNotFoundError struct {
	Name string
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("address book %q not found", e.Name)
}

// BookExistsError indicates that a book with the given name already exists
// in the registry.
type BookExistsError struct {
	Name string
}

func (e *BookExistsError) Error() string {
	return fmt.Sprintf("address book %q already exists", e.Name)
}

// UnknownFieldError indicates a field name that is not recognized, or not
// valid for the attempted operation.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown contact field %q", e.Field)
}
