package domain

// Field identifies a contact field for search and sort operations.
type Field string

const (
	FieldFirstName Field = "first"
	FieldLastName  Field = "last"
	FieldAddress   Field = "address"
	FieldCity      Field = "city"
	FieldState     Field = "state"
	FieldZipCode   Field = "zip"
	FieldPhone     Field = "phone"
	FieldEmail     Field = "email"

	// FieldName sorts by first name with last name as tie-breaker.
	FieldName Field = "name"
)

// ParseField converts a user-supplied field name into a Field.
// Returns UnknownFieldError for anything it does not recognize.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldFirstName, FieldLastName, FieldAddress, FieldCity, FieldState,
		FieldZipCode, FieldPhone, FieldEmail, FieldName:
		return Field(s), nil
	default:
		return "", &UnknownFieldError{Field: s}
	}
}

// valueOf extracts the named field's value from a contact. FieldName has no
// single value and returns the full name; sort handles it separately.
func (f Field) valueOf(c *Contact) string {
	switch f {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldAddress:
		return c.Address
	case FieldCity:
		return c.City
	case FieldState:
		return c.State
	case FieldZipCode:
		return c.ZipCode
	case FieldPhone:
		return c.Phone
	case FieldEmail:
		return c.Email
	case FieldName:
		return c.FullName()
	default:
		return ""
	}
}
