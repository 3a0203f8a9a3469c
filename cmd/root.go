package cmd

import (
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd, closeApp := buildRootCmd()
	err := rootCmd.Execute()
	if closeErr := closeApp(); err == nil {
		err = closeErr
	}
	if err != nil {
		rootCmd.PrintErrln("Error:", describeError(err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd, _ := buildRootCmd()
	return rootCmd
}

// buildRootCmd also returns a func that releases the app's backend
// connections. It is safe to call more than once.
func buildRootCmd() (*cobra.Command, func() error) {
	rootCmd := &cobra.Command{
		Use:           "dp",
		Short:         "Driver Partner CLI (dp): onboarding, notifications and rides",
		Long:          "dp (Driver Partner CLI) signs drivers up and in, walks them through onboarding, pages through notifications and ride history, and times the ongoing ride from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() error { return nil }
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.Close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newSignUpCmd(app),
		newSignInCmd(app),
		newVerifyOTPCmd(app),
		newSignOutCmd(app),
		newProfileCmd(app),
		newAccountCmd(app),
		newNotificationsCmd(app),
		newRidesCmd(app),
		newRideCmd(app),
		newPushCmd(app),
	)

	return rootCmd, app.Close
}

// describeError prefers the driver-facing message for classified failures.
func describeError(err error) string {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindRemote, domain.KindUnauthorized:
		return domain.UserMessage(err)
	case domain.KindTransport:
		return domain.UserMessage(err) + " (" + err.Error() + ")"
	default:
		return err.Error()
	}
}
