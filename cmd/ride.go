package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/driver-partner-cli/internal/adapters/render/ridetimer"
	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newRideCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ride",
		Short: "Work with the ongoing ride",
	}

	cmd.AddCommand(newRideTrackCmd(app))

	return cmd
}

func newRideTrackCmd(app *app) *cobra.Command {
	var rideID string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Show a live timer for the ongoing ride",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.session.Bootstrap(ctx); err != nil {
				return err
			}
			if !app.session.Snapshot().Authenticated() {
				return domain.ErrNotAuthenticated
			}

			ride, found, err := findRide(ctx, app, rideID)
			if err != nil {
				return err
			}
			if !found {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No ongoing ride")
				return err
			}
			if ride.Status != domain.RideOngoing {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Ride %s is %s\n", rideLabel(ride), ride.Status.Label())
				return err
			}

			timer := application.NewRideTimer(ports.SystemClock{})
			timer.Observe(ride)

			result, err := ridetimer.Run(ctx, timer, ridetimer.Options{
				TickInterval: app.cfg.Ride.TickInterval,
				Input:        cmd.InOrStdin(),
				Output:       cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("run ride timer: %w", err)
			}

			app.logger.Info("ride timer finished", "action", "ride_track", "ride_id", result.State.RideID, "phase", result.State.Phase, "elapsed_seconds", result.State.ElapsedSeconds)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ridetimer.Summary(result))
			return err
		},
	}

	cmd.Flags().StringVar(&rideID, "ride", "", "Ride ID (defaults to the first ongoing ride)")

	return cmd
}

// findRide pages through ride history until the requested ride, or any
// ongoing ride when rideID is empty, turns up.
func findRide(ctx context.Context, app *app, rideID string) (domain.RideRecord, bool, error) {
	list := application.NewSynchronizer[domain.RideRecord](
		application.NewRideHistoryPager(app.gateway, app.session),
		app.cfg.Feed.PageSize,
		app.logger.With("list", "rides"),
	)
	defer list.Close()

	checked := 0
	for {
		loaded, err := list.LoadMore(ctx)
		if err != nil {
			return domain.RideRecord{}, false, err
		}

		items := list.Items()
		for _, ride := range items[checked:] {
			if matchesRide(ride, rideID) {
				return ride, true, nil
			}
		}
		checked = len(items)

		if !loaded || !list.State().HasMore {
			return domain.RideRecord{}, false, nil
		}
	}
}

func matchesRide(ride domain.RideRecord, rideID string) bool {
	if rideID == "" {
		return ride.Status == domain.RideOngoing
	}
	return ride.ID == rideID || ride.RideID == rideID
}

func rideLabel(ride domain.RideRecord) string {
	if ride.RideID != "" {
		return ride.RideID
	}
	return ride.ID
}
