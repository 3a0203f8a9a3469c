package cmd

import (
	"fmt"

	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/spf13/cobra"
)

func newPushCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Handle push notification payloads",
	}

	cmd.AddCommand(newPushHandleCmd(app))

	return cmd
}

func newPushHandleCmd(app *app) *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "handle",
		Short: "Route a tapped push notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			decoded, err := application.DecodePushPayload([]byte(payload))
			if err != nil {
				return err
			}
			if err := app.pushRouter.Handle(cmd.Context(), decoded); err != nil {
				return err
			}

			_, _, destination := app.navigator.Last()
			if destination == "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "ignored push type %q\n", decoded.Type)
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "open: %s\n", destination)
			return err
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Push data as a JSON object")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}
