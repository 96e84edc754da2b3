package transfer

import (
	"encoding/json"
	"fmt"

	"github.com/zjrosen/rolo/internal/contacts/domain"
)

// contactRecord is the JSON shape for one contact. Internal ids and GUIDs
// never leave the process; name is the portable identity.
type contactRecord struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// MarshalJSON renders contacts as an indented JSON array.
func MarshalJSON(contacts []*domain.Contact) ([]byte, error) {
	records := make([]contactRecord, len(contacts))
	for i, c := range contacts {
		records[i] = contactRecord{
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
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling contacts: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalJSON parses a JSON array of contacts. Every contact gets a
// fresh GUID.
func UnmarshalJSON(data []byte) ([]*domain.Contact, error) {
	var records []contactRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing contacts json: %w", err)
	}
	contacts := make([]*domain.Contact, len(records))
	for i, r := range records {
		contacts[i] = domain.NewContact(
			r.FirstName, r.LastName, r.Address, r.City, r.State, r.ZipCode, r.Phone, r.Email,
		)
	}
	return contacts, nil
}
