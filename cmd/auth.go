package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSignUpCmd(app *app) *cobra.Command {
	var input application.SignUpCommand

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a driver account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("confirm-password") {
				input.ConfirmPassword = input.Password
			}
			if err := app.session.SignUp(cmd.Context(), input); err != nil {
				return err
			}

			return writeSessionSummary(cmd.OutOrStdout(), "Signed up", app.session.Snapshot())
		},
	}

	cmd.Flags().StringVar(&input.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&input.MobileNumber, "mobile", "", "10-digit mobile number")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&input.ConfirmPassword, "confirm-password", "", "Password confirmation (defaults to --password)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("mobile")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSignInCmd(app *app) *cobra.Command {
	var input application.SignInCommand

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with mobile number and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.SignIn(cmd.Context(), input); err != nil {
				return err
			}

			return writeSessionSummary(cmd.OutOrStdout(), "Signed in", app.session.Snapshot())
		},
	}

	cmd.Flags().StringVar(&input.MobileNumber, "mobile", "", "10-digit mobile number")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("mobile")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newVerifyOTPCmd(app *app) *cobra.Command {
	var otp string

	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Verify the mobile number with the one-time code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			if err := app.session.VerifyOTP(cmd.Context(), otp); err != nil {
				return err
			}

			return writeSessionSummary(cmd.OutOrStdout(), "Mobile number verified", app.session.Snapshot())
		},
	}

	cmd.Flags().StringVar(&otp, "otp", "", "4-digit code")
	_ = cmd.MarkFlagRequired("otp")

	return cmd
}

func newSignOutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.SignOut(cmd.Context()); err != nil {
				return err
			}

			return writeNavigation(cmd.OutOrStdout(), "Signed out", app.navigator)
		},
	}
}

func writeSessionSummary(w io.Writer, headline string, session domain.Session) error {
	name := "driver"
	if session.Profile != nil && session.Profile.FullName != "" {
		name = session.Profile.FullName
	}

	if _, err := fmt.Fprintf(w, "%s as %s\n", headline, name); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "next: %s\n", nextStep(domain.ResolveScreen(session)))
	return err
}

func writeNavigation(w io.Writer, headline string, navigator *terminalNavigator) error {
	if _, err := fmt.Fprintln(w, headline); err != nil {
		return err
	}

	route, ok, _ := navigator.Last()
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(w, "next: %s\n", route)
	return err
}

func nextStep(screen domain.Screen) string {
	switch {
	case screen.Tree == domain.ScreenMain:
		return "home"
	case screen.Route == domain.RouteHome:
		return "sign in or sign up"
	default:
		return string(screen.Route)
	}
}
