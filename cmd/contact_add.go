package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/presentation"
)

var (
	addAddress string
	addCity    string
	addState   string
	addZip     string
	addPhone   string
	addEmail   string
)

var addCmd = &cobra.Command{
	Use:   "add <first> <last>",
	Short: "Add a contact to an address book",
	Long: `Add a contact to an address book.

The first/last name pair identifies a contact within a book,
case-insensitively: a book cannot hold both "Ann Lee" and "ann lee".

Examples:
  rolo add Ann Lee --city Reno --state NV --phone 555-0100
  rolo add Bob Ray -b work --email bob@example.com`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		c := domain.NewContact(args[0], args[1], addAddress, addCity, addState, addZip, addPhone, addEmail)
		if err := svc.AddContact(cmd.Context(), selectedBook(cmd), c); err != nil {
			return err
		}

		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatContact(presentation.FromContact(c))
	},
}

func init() {
	addCmd.Flags().StringVar(&addAddress, "address", "", "street address")
	addCmd.Flags().StringVar(&addCity, "city", "", "city")
	addCmd.Flags().StringVar(&addState, "state", "", "state")
	addCmd.Flags().StringVar(&addZip, "zip", "", "zip code")
	addCmd.Flags().StringVar(&addPhone, "phone", "", "phone number")
	addCmd.Flags().StringVar(&addEmail, "email", "", "email address")
	rootCmd.AddCommand(addCmd)
}
