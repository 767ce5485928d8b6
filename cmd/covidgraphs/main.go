// Package main provides the CLI entrypoint for covidgraphs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danielsamuels/covid-19-graphs/internal/chart"
	"github.com/danielsamuels/covid-19-graphs/internal/country"
	"github.com/danielsamuels/covid-19-graphs/internal/model"
	"github.com/danielsamuels/covid-19-graphs/internal/render"
	"github.com/danielsamuels/covid-19-graphs/internal/report"
)

const (
	defaultShift   = 14
	defaultCountry = "UK"
	defaultInput   = "COVID-19/csse_covid_19_data/csse_covid_19_daily_reports"
	defaultOutput  = "images"
)

var (
	flagShift     int
	flagLog       bool
	flagCountry   string
	flagAnyCase   bool
	flagBasic     bool
	flagDelta     bool
	flagVerbose   bool
	flagInput     string
	flagOutput    string
	flagCountries string
	flagDupes     string
	flagPreview   bool
)

var logger *zap.Logger

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "covidgraphs",
		Short:         "Generate COVID-19 case graphs from daily report files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			config := zap.NewProductionConfig()
			if flagVerbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runGraphs,
	}

	rootCmd.Flags().IntVarP(&flagShift, "shift", "s", defaultShift, "number of days to shift deaths by")
	rootCmd.Flags().BoolVarP(&flagLog, "log", "l", false, "use a log-scale y axis")
	rootCmd.Flags().StringVarP(&flagCountry, "country", "c", defaultCountry, "country to render data for")
	rootCmd.Flags().BoolVarP(&flagAnyCase, "any-case", "a", false, "start charts at the first day with any cases, rather than needing at least one confirmed case and one death")
	rootCmd.Flags().BoolVarP(&flagBasic, "basic", "b", false, "generate the basic data graph")
	rootCmd.Flags().BoolVarP(&flagDelta, "delta", "d", false, "generate the delta trends graph")
	rootCmd.Flags().StringVar(&flagInput, "input", defaultInput, "directory of daily report CSV files")
	rootCmd.Flags().StringVar(&flagOutput, "output", defaultOutput, "directory for generated images")
	rootCmd.Flags().StringVar(&flagCountries, "countries", "", "TOML file with additional country profiles")
	rootCmd.Flags().StringVar(&flagDupes, "duplicate-dates", string(model.DuplicateKeep), "policy for report files sharing a date (keep|fail)")
	rootCmd.Flags().BoolVar(&flagPreview, "preview", false, "render charts to the terminal instead of writing images")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	return rootCmd
}

func runGraphs(_ *cobra.Command, _ []string) error {
	cfg := model.RenderConfig{
		Country: flagCountry,
		Shift:   flagShift,
		Log:     flagLog,
		AnyCase: flagAnyCase,
	}
	if cfg.Shift < 0 {
		return fmt.Errorf("--shift must be >= 0")
	}
	policy, err := parseDuplicatePolicy(flagDupes)
	if err != nil {
		return err
	}

	table, err := country.Load(flagCountries)
	if err != nil {
		return err
	}
	profile, err := table.Lookup(cfg.Country)
	if err != nil {
		return err
	}

	logger.Info("starting graphing",
		zap.String("country", cfg.Country),
		zap.Int("shift", cfg.Shift),
		zap.Bool("log", cfg.Log),
		zap.Bool("any_case", cfg.AnyCase))

	reader := &report.Reader{Country: cfg.Country, Profile: profile, Logger: logger}
	series, err := reader.BuildSeries(flagInput, policy)
	if err != nil {
		return err
	}
	logger.Debug("built time series", zap.Int("days", len(series)))

	var renderer render.Renderer = &render.PNG{Dir: flagOutput}
	if flagPreview {
		renderer = &render.Terminal{Out: os.Stdout}
	}

	for _, kind := range selectedKinds() {
		var points []chart.Point
		switch kind {
		case chart.KindCases:
			points = chart.CasesPoints(series)
		case chart.KindDeltas:
			points = chart.DeltaPoints(chart.Deltas(series))
		}
		built, err := chart.Build(kind, points, cfg)
		if err != nil {
			return err
		}
		filename := chart.Filename(kind, cfg)
		if err := renderer.Render(built, filename); err != nil {
			return fmt.Errorf("failed to render %s chart: %w", kind, err)
		}
		if !flagPreview {
			logger.Info("wrote image", zap.String("path", filepath.Join(flagOutput, filename)))
		}
	}
	return nil
}

// selectedKinds returns the requested chart kinds; with neither flag set, the
// basic graph is the default.
func selectedKinds() []chart.Kind {
	var kinds []chart.Kind
	if flagBasic {
		kinds = append(kinds, chart.KindCases)
	}
	if flagDelta {
		kinds = append(kinds, chart.KindDeltas)
	}
	if len(kinds) == 0 {
		kinds = []chart.Kind{chart.KindCases}
	}
	return kinds
}

func parseDuplicatePolicy(value string) (model.DuplicatePolicy, error) {
	switch policy := model.DuplicatePolicy(value); policy {
	case model.DuplicateKeep, model.DuplicateFail:
		return policy, nil
	default:
		return "", fmt.Errorf("--duplicate-dates must be %q or %q", model.DuplicateKeep, model.DuplicateFail)
	}
}
