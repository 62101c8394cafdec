package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cube-sniper/internal/config"
	"github.com/pfrederiksen/cube-sniper/internal/filter"
	"github.com/pfrederiksen/cube-sniper/internal/geo"
	"github.com/pfrederiksen/cube-sniper/internal/logger"
	"github.com/pfrederiksen/cube-sniper/internal/metrics"
	"github.com/pfrederiksen/cube-sniper/internal/nearby"
	"github.com/pfrederiksen/cube-sniper/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// dateLayout is the format of the --as-of anchor date
const dateLayout = "2006-01-02"

var (
	flagConfig      string
	flagSource      string
	flagOrigin      string
	flagAsOf        string
	flagFormat      string
	flagSort        string
	flagMetricsFile string
	flagVerbose     bool

	flagNames    []string
	flagCities   []string
	flagDates    string
	flagWeekends bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cube-sniper REGION LAT,LON [RADIUS_MILES]",
		Short: "Find upcoming WCA competitions near a location",
		Long: `A CLI tool to find upcoming World Cube Association competitions
within a radius (in miles) of a latitude/longitude.

REGION is a WCA region id such as USA or _North America. The radius
defaults to 150 miles. Put "--" before the arguments when the latitude
is negative, e.g.:

  cube-sniper -- AUS -33.8688,151.2093 200`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSearch,
	}

	// Define flags
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file (or env: "+config.EnvConfigPath+")")
	cmd.Flags().StringVar(&flagSource, "source", "", "Upstream source: api or legacy (default from config: api)")
	cmd.Flags().StringVar(&flagOrigin, "origin", "", "Override the upstream site origin")
	cmd.Flags().StringVar(&flagAsOf, "as-of", "", "Only competitions ongoing or after this date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, table, json or ics")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByDistanceDesc), "Sort order: distance-desc, distance, name or date")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	// Filter flags
	cmd.Flags().StringArrayVar(&flagNames, "name", nil, "Only competitions whose name contains this text (repeatable)")
	cmd.Flags().StringArrayVar(&flagCities, "city", nil, "Only competitions whose city contains this text (repeatable)")
	cmd.Flags().StringVar(&flagDates, "dates", "", "Only competitions starting in this range, e.g. 'Mar 1-15', 'March 1 - April 15' or 'March'")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Only competitions starting on a Saturday or Sunday")

	return cmd
}

// runSearch is the main command logic
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.LogLevel) // validated by loadConfig
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr()).With(logger.Fields{"run_id": uuid.NewString()})
	logger.SetDefault(log)
	defer log.Sync() // nolint:errcheck

	// Validate format and sort order
	format := OutputFormat(strings.ToLower(flagFormat))
	if !format.Valid() {
		return fmt.Errorf("invalid format: %s (must be 'text', 'table', 'json' or 'ics')", flagFormat)
	}
	order := SortOrder(strings.ToLower(flagSort))
	if !order.Valid() {
		return fmt.Errorf("invalid sort: %s (must be 'distance-desc', 'distance', 'name' or 'date')", flagSort)
	}

	region := strings.TrimSpace(args[0])
	if region == "" {
		return fmt.Errorf("region is required")
	}

	origin, err := geo.ParseCoordinate(args[1])
	if err != nil {
		return fmt.Errorf("parsing location: %w", err)
	}

	radius := cfg.DefaultRadiusMiles
	if len(args) == 3 {
		radius, err = strconv.ParseFloat(strings.TrimSpace(args[2]), 64)
		if err != nil {
			return fmt.Errorf("invalid radius %q: %w", args[2], err)
		}
	}

	asOf := flagAsOf
	if asOf == "" {
		asOf = time.Now().Format(dateLayout)
	}
	anchor, err := time.Parse(dateLayout, asOf)
	if err != nil {
		return fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD)", asOf)
	}

	f, err := buildFilter(anchor)
	if err != nil {
		return err
	}

	source, err := scraper.ParseSource(cfg.Source)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsTextfile != "" {
		m = metrics.New()
	}

	log.Debug("Searching competitions", logger.Fields{
		"region": region,
		"origin": origin.String(),
		"radius": radius,
		"as_of":  asOf,
		"source": string(source),
		"filter": f.String(),
	})

	sc := scraper.New(scraper.NewHTTPFetcher(cfg.Timeout, cfg.UserAgent), scraper.Options{
		Origin:  cfg.Origin,
		Source:  source,
		Logger:  log,
		Metrics: m,
	})

	events, err := sc.FetchEvents(cmd.Context(), region, asOf)
	if err != nil {
		log.Error("Search failed", logger.Fields{"region": region}, err)
		return err
	}

	results := nearby.WithinRadius(f.Apply(events), origin, radius)
	sortResults(results, order)

	now := time.Now().UTC()
	m.RunCompleted(len(results), now)

	log.Info("Search complete", logger.Fields{
		"fetched": len(events),
		"nearby":  len(results),
	})

	result := &OutputResult{
		SearchedAt:  now,
		Region:      region,
		Origin:      origin,
		RadiusMiles: radius,
		Count:       len(results),
		Results:     results,
	}

	out := cmd.OutOrStdout()
	if err := WriteOutput(out, result, format, OutputOptions{
		Verbose: flagVerbose,
		Width:   terminalWidth(out),
	}); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if cfg.MetricsTextfile != "" {
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return err
		}
	}

	return nil
}

// buildFilter creates a filter from the filter flags. Date ranges without a
// year are resolved against the as-of date.
func buildFilter(anchor time.Time) (*filter.Filter, error) {
	f := filter.NewFilter()
	f.Names = append(f.Names, flagNames...)
	f.Cities = append(f.Cities, flagCities...)
	f.WeekendsOnly = flagWeekends
	f.Anchor = anchor

	if flagDates != "" {
		from, to, err := filter.ParseDateRange(flagDates, anchor)
		if err != nil {
			return nil, fmt.Errorf("parsing --dates: %w", err)
		}
		f.DateFrom, f.DateTo = from, to
	}

	return f, nil
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagSource != "" {
		cfg.Source = strings.ToLower(strings.TrimSpace(flagSource))
	}
	if flagOrigin != "" {
		cfg.Origin = flagOrigin
	}
	if flagMetricsFile != "" {
		cfg.MetricsTextfile = flagMetricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
