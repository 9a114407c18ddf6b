package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"foundation/internal/app"
	"foundation/internal/types"
)

type trackOptions struct {
	Tracker         string
	TrackingID      string
	CollectEndpoint string
	HTTPTimeout     int
}

type searchOptions struct {
	FiltersFile string
	Q           string
	Categories  []int
	Locations   []int
	WorkTypes   []int
	Sectors     []int
}

func newTrackCommand() *cobra.Command {
	opts := &trackOptions{}
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Send analytics events",
	}
	cmd.PersistentFlags().StringVar(&opts.Tracker, "tracker", string(types.TrackerKindLog), "Tracker backend (log, http)")
	cmd.PersistentFlags().StringVar(&opts.TrackingID, "tracking-id", "", "Analytics property id")
	cmd.PersistentFlags().StringVar(&opts.CollectEndpoint, "collect-endpoint", "", "Collect endpoint for the http tracker")
	cmd.PersistentFlags().IntVar(&opts.HTTPTimeout, "http-timeout", 0, "HTTP timeout in seconds")
	_ = viper.BindPFlag("tracker", cmd.PersistentFlags().Lookup("tracker"))
	_ = viper.BindPFlag("tracking_id", cmd.PersistentFlags().Lookup("tracking-id"))
	_ = viper.BindPFlag("collect_endpoint", cmd.PersistentFlags().Lookup("collect-endpoint"))
	_ = viper.BindPFlag("http_timeout", cmd.PersistentFlags().Lookup("http-timeout"))

	cmd.AddCommand(newTrackJobViewCommand())
	cmd.AddCommand(newTrackJobClickCommand())
	cmd.AddCommand(newTrackJobSearchCommand())
	cmd.AddCommand(newTrackAlertCommand())
	cmd.AddCommand(newTrackWeeklySubscribeCommand())
	cmd.AddCommand(newTrackShareCommand())
	cmd.AddCommand(newTrackPageViewCommand())
	return cmd
}

func newTrackJobViewCommand() *cobra.Command {
	var slug string
	cmd := &cobra.Command{
		Use:   "job-view",
		Short: "Track a job detail view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrack(cmd.Context(), func(ctx context.Context, service app.Service) (app.TrackResult, error) {
				return service.TrackJobView(ctx, slug)
			})
		},
	}
	cmd.Flags().StringVar(&slug, "slug", "", "Job slug")
	return cmd
}

func newTrackJobClickCommand() *cobra.Command {
	var slug, tag string
	cmd := &cobra.Command{
		Use:   "job-click",
		Short: "Track an apply click",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrack(cmd.Context(), func(ctx context.Context, service app.Service) (app.TrackResult, error) {
				return service.TrackJobClick(ctx, types.ClickTarget{TagName: tag}, slug)
			})
		},
	}
	cmd.Flags().StringVar(&slug, "slug", "", "Job slug")
	cmd.Flags().StringVar(&tag, "tag", "a", "Tag name of the clicked element")
	return cmd
}

func newTrackJobSearchCommand() *cobra.Command {
	search := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "job-search",
		Short: "Track a job search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := search.filters(cmd)
			if err != nil {
				return err
			}
			return runTrack(cmd.Context(), func(ctx context.Context, service app.Service) (app.TrackResult, error) {
				return service.TrackJobSearch(ctx, filters)
			})
		},
	}
	addSearchFlags(cmd, search)
	return cmd
}

func newTrackAlertCommand() *cobra.Command {
	search := &searchOptions{}
	var action, frequency string
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Track a job alert confirm, subscribe, unsubscribe or update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := search.filters(cmd)
			if err != nil {
				return err
			}
			return runTrack(cmd.Context(), func(ctx context.Context, service app.Service) (app.TrackResult, error) {
				return service.TrackAlert(ctx, types.AlertAction(strings.ToLower(action)), frequency, filters)
			})
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "Alert action (confirm, subscribe, unsubscribe, update)")
	cmd.Flags().StringVar(&frequency, "frequency", "", "Alert frequency")
	addSearchFlags(cmd, search)
	return cmd
}

func newTrackWeeklySubscribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly-subscribe",
		Short: "Track a weekly email signup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrack(cmd.Context(), func(ctx context.Context, service app.Service) (app.TrackResult, error) {
				return service.TrackWeeklySubscribe(ctx)
			})
		},
	}
}

func newTrackShareCommand() *cobra.Command {
	var channel string
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Track a social share",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrack(cmd.Context(), func(ctx context.Context, service app.Service) (app.TrackResult, error) {
				return service.TrackShare(ctx, channel)
			})
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "Share channel")
	return cmd
}

func newTrackPageViewCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "pageview",
		Short: "Track a page view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrack(cmd.Context(), func(ctx context.Context, service app.Service) (app.TrackResult, error) {
				return service.TrackPageView(ctx, path)
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Page path")
	return cmd
}

func runTrack(ctx context.Context, track func(context.Context, app.Service) (app.TrackResult, error)) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := track(ctx, service)
	if err != nil {
		return err
	}
	if !result.Sent {
		fmt.Fprintln(os.Stderr, "skipped")
		return nil
	}
	fmt.Fprintf(os.Stderr, "sent: %s/%s\n", result.Event.Category, result.Event.Action)
	return nil
}

func addSearchFlags(cmd *cobra.Command, opts *searchOptions) {
	cmd.Flags().StringVar(&opts.FiltersFile, "filters", "", "YAML or JSON file with search filters")
	cmd.Flags().StringVar(&opts.Q, "q", "", "Search term")
	cmd.Flags().IntSliceVar(&opts.Categories, "category", nil, "Category ids")
	cmd.Flags().IntSliceVar(&opts.Locations, "location", nil, "Location ids")
	cmd.Flags().IntSliceVar(&opts.WorkTypes, "work-type", nil, "Work type ids")
	cmd.Flags().IntSliceVar(&opts.Sectors, "sector", nil, "Sector ids")
}

// filters reads the filters file, if any, then applies explicitly set flags
// on top.
func (o *searchOptions) filters(cmd *cobra.Command) (types.Filters, error) {
	filters := types.Filters{}
	if strings.TrimSpace(o.FiltersFile) != "" {
		loaded, err := loadFiltersFile(o.FiltersFile)
		if err != nil {
			return types.Filters{}, err
		}
		filters = loaded
	}
	if flagChanged(cmd, "q") {
		filters.Q = o.Q
	}
	if flagChanged(cmd, "category") {
		filters.Categories = o.Categories
	}
	if flagChanged(cmd, "location") {
		filters.Locations = o.Locations
	}
	if flagChanged(cmd, "work-type") {
		filters.WorkTypes = o.WorkTypes
	}
	if flagChanged(cmd, "sector") {
		filters.Sectors = o.Sectors
	}
	return filters, nil
}

// loadFiltersFile decodes YAML, which also accepts JSON documents.
func loadFiltersFile(path string) (types.Filters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Filters{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("filters file not found").
			WithCause(err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return types.Filters{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse filters file").
			WithCause(err)
	}
	return types.FiltersFromMap(values)
}
