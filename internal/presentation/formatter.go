package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Output selects how the formatter renders results.
type Output string

const (
	OutputJSON  Output = "json"
	OutputTable Output = "table"
)

// ParseOutput validates an output mode flag value.
func ParseOutput(s string) (Output, error) {
	switch Output(strings.ToLower(s)) {
	case OutputJSON:
		return OutputJSON, nil
	case OutputTable:
		return OutputTable, nil
	default:
		return "", fmt.Errorf("unknown output %q: expected json or table", s)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// Formatter handles output formatting.
type Formatter struct {
	writer io.Writer
	output Output
}

// NewFormatter creates a formatter for the given output mode.
func NewFormatter(writer io.Writer, output Output) *Formatter {
	return &Formatter{writer: writer, output: output}
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatContact renders a single contact.
func (f *Formatter) FormatContact(dto ContactDTO) error {
	if f.output == OutputJSON {
		return f.encode(dto)
	}
	return f.table([]ContactDTO{dto})
}

// FormatContacts renders a list of contacts.
func (f *Formatter) FormatContacts(dtos []ContactDTO) error {
	if f.output == OutputJSON {
		return f.encode(dtos)
	}
	return f.table(dtos)
}

// FormatBooks renders the book listing.
func (f *Formatter) FormatBooks(books []BookDTO) error {
	if f.output == OutputJSON {
		return f.encode(books)
	}
	rows := make([][]string, len(books))
	for i, b := range books {
		rows[i] = []string{b.Name, fmt.Sprintf("%d", b.Contacts)}
	}
	return f.writeTable([]string{"BOOK", "CONTACTS"}, rows)
}

// FormatCount renders a count result.
func (f *Formatter) FormatCount(dto CountDTO) error {
	if f.output == OutputJSON {
		return f.encode(dto)
	}
	_, err := fmt.Fprintf(f.writer, "%d\n", dto.Count)
	return err
}

// FormatMessage renders a confirmation line for mutations.
func (f *Formatter) FormatMessage(format string, args ...any) error {
	if f.output == OutputJSON {
		return f.encode(map[string]string{"message": fmt.Sprintf(format, args...)})
	}
	_, err := fmt.Fprintf(f.writer, format+"\n", args...)
	return err
}

func (f *Formatter) table(dtos []ContactDTO) error {
	withBook := false
	for _, dto := range dtos {
		if dto.Book != "" {
			withBook = true
			break
		}
	}

	header := []string{"NAME", "ADDRESS", "CITY", "STATE", "ZIP", "PHONE", "EMAIL"}
	if withBook {
		header = append([]string{"BOOK"}, header...)
	}
	rows := make([][]string, len(dtos))
	for i, dto := range dtos {
		row := []string{
			dto.FirstName + " " + dto.LastName,
			dto.Address, dto.City, dto.State, dto.ZipCode, dto.Phone, dto.Email,
		}
		if withBook {
			row = append([]string{dto.Book}, row...)
		}
		rows[i] = row
	}
	return f.writeTable(header, rows)
}

func (f *Formatter) writeTable(header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string, style lipgloss.Style) error {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			pad := widths[i] - lipgloss.Width(cell)
			parts[i] = style.Render(cell) + strings.Repeat(" ", pad)
		}
		_, err := fmt.Fprintln(f.writer, strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	if err := writeRow(header, headerStyle); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row, lipgloss.NewStyle()); err != nil {
			return err
		}
	}
	return nil
}
