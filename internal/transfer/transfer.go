// Package transfer moves contacts between address books and flat files.
// It supports CSV and JSON, detected by file extension, and writes
// atomically so a crashed export never leaves a torn file behind.
package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/log"
)

// Format identifies a transfer file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// UnknownFormatError is returned for paths whose extension is neither
// .csv nor .json.
type UnknownFormatError struct {
	Path string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("cannot tell format of %q: expected a .csv or .json extension", e.Path)
}

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", &UnknownFormatError{Path: path}
	}
}

// ExportFile writes the contacts to path in the format its extension
// names.
func ExportFile(path string, contacts []*domain.Contact) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatCSV:
		data, err = MarshalCSV(contacts)
	case FormatJSON:
		data, err = MarshalJSON(contacts)
	}
	if err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}
	log.Info(log.CatTransfer, "Exported contacts", "path", path, "format", string(format), "count", len(contacts))
	return nil
}

// ImportFile reads contacts from path in the format its extension names.
// Each imported contact gets a fresh GUID; identity travels by name, not
// by id.
func ImportFile(path string) ([]*domain.Contact, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var contacts []*domain.Contact
	switch format {
	case FormatCSV:
		contacts, err = UnmarshalCSV(data)
	case FormatJSON:
		contacts, err = UnmarshalJSON(data)
	}
	if err != nil {
		return nil, err
	}
	log.Info(log.CatTransfer, "Imported contacts", "path", path, "format", string(format), "count", len(contacts))
	return contacts, nil
}

// writeAtomic writes data to a temp file next to path and renames it
// into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
