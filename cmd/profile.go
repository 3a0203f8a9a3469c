package cmd

import (
	"encoding/json"
	"errors"

	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Complete onboarding and manage the driver profile",
	}

	cmd.AddCommand(
		newProfileCompleteCmd(app),
		newProfilePictureCmd(app),
		newProfileLicenseCmd(app),
		newProfileEditCmd(app),
		newProfileShowCmd(app),
	)

	return cmd
}

func newProfileCompleteCmd(app *app) *cobra.Command {
	var input application.CompleteProfileCommand

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Submit personal details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfileStep(cmd, app, "Profile details saved", func() error {
				return app.session.CompleteProfile(cmd.Context(), input)
			})
		},
	}

	cmd.Flags().IntVar(&input.Age, "age", 0, "Age in years (18-70)")
	cmd.Flags().IntVar(&input.Experience, "experience", 0, "Driving experience in years")
	cmd.Flags().StringVar(&input.Gender, "gender", "", "Gender")
	cmd.Flags().StringVar(&input.City, "city", "", "City")
	cmd.Flags().StringVar(&input.Skill, "skill", "", "Driving skill")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email address (optional)")
	cmd.Flags().BoolVar(&input.AcceptedTerms, "accept-terms", false, "Accept the Terms & Conditions")

	return cmd
}

func newProfilePictureCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "picture <image-ref>",
		Short: "Attach the profile picture",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileStep(cmd, app, "Profile picture saved", func() error {
				return app.session.SetProfilePicture(cmd.Context(), firstArg(args))
			})
		},
	}
}

func newProfileLicenseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "license <image-ref>",
		Short: "Attach the driving license",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileStep(cmd, app, "Driving license saved", func() error {
				return app.session.AddDrivingLicense(cmd.Context(), firstArg(args))
			})
		},
	}
}

func newProfileEditCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the driver's name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfileStep(cmd, app, "Name updated", func() error {
				return app.session.EditName(cmd.Context(), name)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New full name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show account details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Bootstrap(cmd.Context()); err != nil {
				return err
			}

			session := app.session.Snapshot()
			if !session.Authenticated() {
				return domain.ErrNotAuthenticated
			}
			if session.Profile == nil {
				return errors.New("no driver profile available")
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(session.Profile)
			}

			return writeStatusOutput(cmd, app, loadStatus(app), true, false)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")

	return cmd
}

func runProfileStep(cmd *cobra.Command, app *app, headline string, step func() error) error {
	if err := app.session.Bootstrap(cmd.Context()); err != nil {
		return err
	}
	if err := step(); err != nil {
		return err
	}

	return writeSessionSummary(cmd.OutOrStdout(), headline, app.session.Snapshot())
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
