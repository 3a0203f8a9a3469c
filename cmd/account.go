package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var errDeleteNotConfirmed = errors.New("refusing to delete the account without --yes")

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the driver account",
	}

	cmd.AddCommand(newAccountDeleteCmd(app))

	return cmd
}

func newAccountDeleteCmd(app *app) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the driver account and sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errDeleteNotConfirmed
			}
			if err := app.session.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			if err := app.session.DeleteAccount(cmd.Context()); err != nil {
				return err
			}

			return writeNavigation(cmd.OutOrStdout(), "Account deleted", app.navigator)
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm account deletion")

	return cmd
}
