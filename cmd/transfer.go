package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rolo/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export a book's contacts to a CSV or JSON file",
	Long: `Export a book's contacts to a file. The extension picks the
format: .csv or .json. The file is written atomically, so an existing
file is never left half-overwritten.

Examples:
  rolo export contacts.csv
  rolo export backup.json -b work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		book := selectedBook(cmd)
		contacts, err := svc.ListContacts(cmd.Context(), book)
		if err != nil {
			return err
		}
		if err := transfer.ExportFile(args[0], contacts); err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatMessage("Exported %d contacts from %q to %s", len(contacts), book, args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import contacts from a CSV or JSON file",
	Long: `Import contacts from a file into a book. The extension picks the
format: .csv or .json.

The whole file is imported in one step: if any contact collides with an
existing name in the book, nothing is imported.

Examples:
  rolo import contacts.csv
  rolo import backup.json -b work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contacts, err := transfer.ImportFile(args[0])
		if err != nil {
			return err
		}

		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		book := selectedBook(cmd)
		n, err := svc.ImportContacts(cmd.Context(), book, contacts)
		if err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatMessage("Imported %d contacts into %q", n, book)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
