package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rolo/internal/presentation"
)

var findCmd = &cobra.Command{
	Use:   "find <first> <last>",
	Short: "Look up a contact by name",
	Long: `Look up a contact by first and last name in one address book.

Name matching is case-insensitive.

Examples:
  rolo find Ann Lee
  rolo find ann lee -b work -o json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := svc.FindContact(cmd.Context(), selectedBook(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatContact(presentation.FromContact(c))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a book's contacts in the order they were added",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		contacts, err := svc.ListContacts(cmd.Context(), selectedBook(cmd))
		if err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatContacts(presentation.FromContacts(contacts))
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(listCmd)
}
