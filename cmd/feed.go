package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	feedadapter "github.com/bnema/driver-partner-cli/internal/adapters/render/feed"
	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/spf13/cobra"
)

const defaultFeedPages = 1

type feedOptions struct {
	pages  int
	asJSON bool
	browse bool
}

// feedSource adapts a synchronized list to the interactive browser.
type feedSource[T domain.Identifiable] struct {
	list  *application.Synchronizer[T]
	lines func(items []T, now time.Time, exhausted bool) []string
}

func (s feedSource[T]) LoadIfEmpty(ctx context.Context) (bool, error) {
	return s.list.LoadIfEmpty(ctx)
}

func (s feedSource[T]) LoadMore(ctx context.Context) (bool, error) {
	return s.list.LoadMore(ctx)
}

func (s feedSource[T]) Lines(now time.Time) []string {
	state := s.list.State()
	return s.lines(state.Items, now, !state.HasMore)
}

func (s feedSource[T]) Exhausted() bool {
	return !s.list.State().HasMore
}

type feedJSON[T domain.Identifiable] struct {
	Items     []T  `json:"items"`
	NextPage  int  `json:"nextPage"`
	Exhausted bool `json:"exhausted"`
}

func newNotificationsCmd(app *app) *cobra.Command {
	var opts feedOptions

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := application.NewSynchronizer[domain.Notification](
				application.NewNotificationPager(app.gateway, app.session),
				app.cfg.Feed.PageSize,
				app.logger.With("list", "notifications"),
			)
			defer list.Close()

			return runFeed(cmd, app, opts, "Notifications", list,
				feedadapter.NotificationLines,
				func(items []domain.Notification, now time.Time, exhausted bool) string {
					return feedadapter.RenderNotifications(items, now, exhausted)
				},
			)
		},
	}

	bindFeedFlags(cmd, &opts)
	return cmd
}

func newRidesCmd(app *app) *cobra.Command {
	var opts feedOptions

	cmd := &cobra.Command{
		Use:   "rides",
		Short: "List ride history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := application.NewSynchronizer[domain.RideRecord](
				application.NewRideHistoryPager(app.gateway, app.session),
				app.cfg.Feed.PageSize,
				app.logger.With("list", "rides"),
			)
			defer list.Close()

			return runFeed(cmd, app, opts, "Ride history", list,
				func(items []domain.RideRecord, now time.Time, _ bool) []string {
					return feedadapter.RideLines(items, now)
				},
				func(items []domain.RideRecord, now time.Time, _ bool) string {
					return feedadapter.RenderRides(items, now)
				},
			)
		},
	}

	bindFeedFlags(cmd, &opts)
	return cmd
}

func bindFeedFlags(cmd *cobra.Command, opts *feedOptions) {
	cmd.Flags().IntVar(&opts.pages, "pages", defaultFeedPages, "Number of pages to fetch")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the fetched items as JSON")
	cmd.Flags().BoolVar(&opts.browse, "browse", false, "Browse interactively, loading pages while scrolling")
}

func runFeed[T domain.Identifiable](
	cmd *cobra.Command,
	app *app,
	opts feedOptions,
	title string,
	list *application.Synchronizer[T],
	lines func([]T, time.Time, bool) []string,
	render func([]T, time.Time, bool) string,
) error {
	ctx := cmd.Context()
	if err := app.session.Bootstrap(ctx); err != nil {
		return err
	}
	if !app.session.Snapshot().Authenticated() {
		return domain.ErrNotAuthenticated
	}

	if opts.browse {
		return feedadapter.Browse(ctx, feedSource[T]{list: list, lines: lines}, feedadapter.Options{
			Title:        title,
			EndThreshold: app.cfg.Feed.EndThreshold,
			Input:        cmd.InOrStdin(),
			Output:       cmd.OutOrStdout(),
			Now:          app.now,
		})
	}

	if opts.pages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", opts.pages)
	}

	err := runPagedFetch(ctx, cmd.ErrOrStderr(), title, opts.pages, func(ctx context.Context, report func(page, items int)) error {
		load := list.LoadIfEmpty
		for i := 1; i <= opts.pages; i++ {
			loaded, err := load(ctx)
			load = list.LoadMore
			if err != nil {
				return err
			}
			state := list.State()
			report(i, len(state.Items))
			if !loaded || !state.HasMore {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	state := list.State()
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(feedJSON[T]{Items: state.Items, NextPage: state.Page, Exhausted: !state.HasMore})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), render(state.Items, app.now(), !state.HasMore))
	return err
}
