package transfer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rolo/internal/contacts/domain"
)

func sampleContacts() []*domain.Contact {
	return []*domain.Contact{
		domain.NewContact("Ann", "Lee", "12 Main St", "Reno", "NV", "89501", "555-0100", "ann@example.com"),
		domain.NewContact("Bob", "Ray", "3 Oak Ave, Apt 2", "Paris", "TX", "75460", "555-0101", "bob@example.com"),
	}
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("contacts.CSV")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, format)

	format, err = DetectFormat("/tmp/out.json")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	_, err = DetectFormat("contacts.txt")
	var unknown *UnknownFormatError
	require.ErrorAs(t, err, &unknown)
}

func TestCSVRoundTrip(t *testing.T) {
	data, err := MarshalCSV(sampleContacts())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "first_name,last_name,address,city,state,zip_code,phone,email", lines[0])

	contacts, err := UnmarshalCSV(data)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	// The comma inside the address survives quoting.
	require.Equal(t, "3 Oak Ave, Apt 2", contacts[1].Address)
	require.NotEmpty(t, contacts[0].GUID)
}

func TestCSVRejectsWrongHeader(t *testing.T) {
	_, err := UnmarshalCSV([]byte("first,last\nAnn,Lee\n"))
	require.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := MarshalJSON(sampleContacts())
	require.NoError(t, err)
	require.Contains(t, string(data), `"zip_code": "89501"`)

	contacts, err := UnmarshalJSON(data)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	require.Equal(t, "Paris", contacts[1].City)
}

func TestExportImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.json")

	require.NoError(t, ExportFile(path, sampleContacts()))
	contacts, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	// Re-export over the existing file; the rename replaces it in place
	// and leaves no temp files behind.
	require.NoError(t, ExportFile(path, contacts[:1]))
	contacts, err = ImportFile(path)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
