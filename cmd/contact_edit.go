package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rolo/internal/contacts/domain"
	"github.com/zjrosen/rolo/internal/presentation"
)

var editCmd = &cobra.Command{
	Use:   "edit <first> <last>",
	Short: "Edit fields of an existing contact",
	Long: `Edit fields of an existing contact.

Only the flags you pass change; everything else keeps its value. Passing
an empty string clears a field. Renaming with --first/--last fails if
another contact in the book already has the new name.

Examples:
  rolo edit Ann Lee --city Sparks
  rolo edit Ann Lee --last Cho
  rolo edit Bob Ray --email ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := domain.Patch{}
		stringFlag := func(name string) *string {
			if !cmd.Flags().Changed(name) {
				return nil
			}
			v, _ := cmd.Flags().GetString(name)
			return &v
		}
		patch.FirstName = stringFlag("first")
		patch.LastName = stringFlag("last")
		patch.Address = stringFlag("address")
		patch.City = stringFlag("city")
		patch.State = stringFlag("state")
		patch.ZipCode = stringFlag("zip")
		patch.Phone = stringFlag("phone")
		patch.Email = stringFlag("email")

		svc, _, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := svc.EditContact(cmd.Context(), selectedBook(cmd), args[0], args[1], patch)
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

func init() {
	editCmd.Flags().String("first", "", "new first name")
	editCmd.Flags().String("last", "", "new last name")
	editCmd.Flags().String("address", "", "street address")
	editCmd.Flags().String("city", "", "city")
	editCmd.Flags().String("state", "", "state")
	editCmd.Flags().String("zip", "", "zip code")
	editCmd.Flags().String("phone", "", "phone number")
	editCmd.Flags().String("email", "", "email address")
	rootCmd.AddCommand(editCmd)
}
