package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/driver-partner-cli/internal/adapters/render/status"
	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var details bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the session and onboarding progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Bootstrap(cmd.Context()); err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, loadStatus(app), details, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")
	cmd.Flags().BoolVar(&details, "details", false, "Include the full driver record")

	return cmd
}

func loadStatus(app *app) application.Status {
	session := app.session.Snapshot()
	if !session.Authenticated() {
		return application.StatusFromSession(session, nil)
	}

	claims, err := app.readClaims(session.AccessToken)
	if err != nil {
		app.logger.Debug("access token claims unavailable", "action", "status", "error", err)
		return application.StatusFromSession(session, nil)
	}

	return application.StatusFromSession(session, &claims)
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, details bool, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
		Now:     app.now(),
		Details: details,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
