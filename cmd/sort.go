package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/presentation"
)

var sortAll bool

var sortCmd = &cobra.Command{
	Use:   "sort <field>",
	Short: "List contacts sorted by a field",
	Long: `List a book's contacts stably sorted by a field. Contacts that
compare equal keep their insertion order.

Fields: first, last, name, address, city, state, zip, phone, email.
"name" sorts by first name, then last name.

With --all the sort spans every address book; only name and city are
supported there, and each contact is tagged with its book.

Examples:
  rolo sort last
  rolo sort city -b work
  rolo sort name --all`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := domain.ParseField(args[0])
		if err != nil {
			return err
		}

		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		formatter, err := newFormatter()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if sortAll {
			var tagged []domain.TaggedContact
			switch field {
			case domain.FieldName:
				tagged = svc.SortAllByName(ctx)
			case domain.FieldCity:
				tagged = svc.SortAllByCity(ctx)
			default:
				return fmt.Errorf("cannot sort all books by %q: only name and city are supported", args[0])
			}
			return formatter.FormatContacts(presentation.FromTagged(tagged))
		}

		contacts, err := svc.SortContacts(ctx, selectedBook(cmd), field)
		if err != nil {
			return err
		}
		return formatter.FormatContacts(presentation.FromContacts(contacts))
	},
}

func init() {
	sortCmd.Flags().BoolVar(&sortAll, "all", false, "sort across every address book")
	rootCmd.AddCommand(sortCmd)
}
