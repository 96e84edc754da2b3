package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/presentation"
)

// searchField parses and restricts a field argument to city or state.
func searchField(arg string) (domain.Field, error) {
	field, err := domain.ParseField(arg)
	if err != nil {
		return "", err
	}
	if field != domain.FieldCity && field != domain.FieldState {
		return "", fmt.Errorf("cannot search by %q: only city and state are searchable", arg)
	}
	return field, nil
}

var searchCmd = &cobra.Command{
	Use:   "search <city|state> <value>",
	Short: "Search contacts by city or state",
	Long: `Search contacts by city or state, case-insensitively.

Without --book the search spans every address book and each match is
tagged with its book. With --book it is restricted to that book.

Examples:
  rolo search city Paris
  rolo search state NV --book friends`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := searchField(args[0])
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
		if cmd.Flags().Changed("book") {
			contacts, err := svc.SearchBook(ctx, selectedBook(cmd), field, args[1])
			if err != nil {
				return err
			}
			return formatter.FormatContacts(presentation.FromContacts(contacts))
		}

		var tagged []domain.TaggedContact
		if field == domain.FieldCity {
			tagged = svc.SearchByCity(ctx, args[1])
		} else {
			tagged = svc.SearchByState(ctx, args[1])
		}
		return formatter.FormatContacts(presentation.FromTagged(tagged))
	},
}

var countCmd = &cobra.Command{
	Use:   "count <city|state> <value>",
	Short: "Count contacts by city or state across all books",
	Long: `Count contacts matching a city or state across every address book.

Examples:
  rolo count city Paris
  rolo count state NV -o json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := searchField(args[0])
		if err != nil {
			return err
		}

		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		var count int
		if field == domain.FieldCity {
			count = svc.CountByCity(ctx, args[1])
		} else {
			count = svc.CountByState(ctx, args[1])
		}

		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatCount(presentation.CountDTO{
			Field: string(field),
			Value: args[1],
			Count: count,
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(countCmd)
}
