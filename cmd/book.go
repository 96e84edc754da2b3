package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rolo/internal/config"
	"github.com/zjrosen/rolo/internal/presentation"
)

var bookCreateCmd = &cobra.Command{
	Use:   "book:create <name>",
	Short: "Create a new address book",
	Long: `Create a new, empty address book.

Book names are case-sensitive and must be unique.

Examples:
  rolo book:create friends
  rolo book:create work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.CreateBook(cmd.Context(), args[0]); err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatMessage("Created book %q", args[0])
	},
}

var bookListCmd = &cobra.Command{
	Use:   "book:list",
	Short: "List all address books",
	Long: `List every address book and its contact count, in creation order.

Examples:
  rolo book:list
  rolo book:list -o json | jq '.[].name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		names := svc.Books(ctx)
		books := make([]presentation.BookDTO, len(names))
		for i, name := range names {
			contacts, err := svc.ListContacts(ctx, name)
			if err != nil {
				return err
			}
			books[i] = presentation.BookDTO{Name: name, Contacts: len(contacts)}
		}

		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatBooks(books)
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "book:delete <name>",
	Short: "Delete an address book and all its contacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.DeleteBook(cmd.Context(), args[0]); err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatMessage("Deleted book %q", args[0])
	},
}

var bookUseCmd = &cobra.Command{
	Use:   "book:use <name>",
	Short: "Set the default address book",
	Long: `Set the default address book in the config file.

Commands without an explicit --book flag operate on this book. The book
must already exist.

Examples:
  rolo book:use work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		name := args[0]
		if _, err := svc.ListContacts(cmd.Context(), name); err != nil {
			return err
		}

		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no config file in use; pass --config or create one first")
		}
		if err := config.SaveDefaultBook(configPath, name); err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatMessage("Default book is now %q", name)
	},
}

func init() {
	rootCmd.AddCommand(bookCreateCmd)
	rootCmd.AddCommand(bookListCmd)
	rootCmd.AddCommand(bookDeleteCmd)
	rootCmd.AddCommand(bookUseCmd)
}
