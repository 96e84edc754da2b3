package transfer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/zjrosen/rolo/internal/contacts/domain"
)

// csvHeader is the fixed column set. Imports reject files whose header
// does not match it exactly.
var csvHeader = []string{
	"first_name", "last_name", "address", "city", "state", "zip_code", "phone", "email",
}

// MarshalCSV renders contacts as CSV with the fixed header row.
func MarshalCSV(contacts []*domain.Contact) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, c := range contacts {
		row := []string{c.FirstName, c.LastName, c.Address, c.City, c.State, c.ZipCode, c.Phone, c.Email}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row for %s: %w", c.FullName(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalCSV parses CSV data written by MarshalCSV. Every contact gets
// a fresh GUID.
func UnmarshalCSV(data []byte) ([]*domain.Contact, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected csv header: column %d is %q, want %q", i+1, header[i], want)
		}
	}

	var contacts []*domain.Contact
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		contacts = append(contacts, domain.NewContact(
			row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7],
		))
	}
	return contacts, nil
}
