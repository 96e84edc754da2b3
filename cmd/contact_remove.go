package cmd

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <first> <last>",
	Short: "Remove a contact from an address book",
	Long: `Remove a contact from an address book.

Name matching is case-insensitive.

Examples:
  rolo remove Ann Lee
  rolo remove bob ray -b work`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.RemoveContact(cmd.Context(), selectedBook(cmd), args[0], args[1]); err != nil {
			return err
		}
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		return formatter.FormatMessage("Removed %s %s", args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
