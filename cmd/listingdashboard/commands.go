package main

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"ListingDashboard/internal/app"
	"ListingDashboard/internal/config"
	"ListingDashboard/internal/logging"
	"ListingDashboard/internal/report"
)

type options struct {
	configPath string
	summary    bool
	open       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "listingdashboard",
		Short:         "Turns a cached or fetched search-results page into a sortable HTML dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (defaults to $LISTING_DASHBOARD_CONFIG)")
	root.PersistentFlags().BoolVar(&opts.open, "open", false, "open the generated dashboard in the default browser")

	run := &cobra.Command{
		Use:   "run",
		Short: "Acquire, extract, persist and render in one pass.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
	}
	run.Flags().BoolVar(&opts.summary, "summary", false, "print the extracted records as a table")

	render := &cobra.Command{
		Use:   "render",
		Short: "Rebuild the dashboard from the existing CSV file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderOnly(cmd, opts)
		},
	}

	root.AddCommand(run, render)
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())
	return root
}

func runPipeline(cmd *cobra.Command, opts *options) error {
	cfg := config.Load(opts.configPath)
	logger := logging.New(cfg.Logging.Level)
	application := app.New(cfg, logger)

	result, err := application.Run(cmd.Context())
	if err != nil {
		return err
	}

	if opts.summary {
		report.WriteSummary(cmd.OutOrStdout(), string(result.Source), result.Records)
	}
	logger.Info("dashboard ready", "csv", result.CSVPath, "html", result.HTMLPath, "records", len(result.Records))
	return openDashboard(opts, cfg.Paths.HTML)
}

func renderOnly(cmd *cobra.Command, opts *options) error {
	cfg := config.Load(opts.configPath)
	logger := logging.New(cfg.Logging.Level)

	if err := app.New(cfg, logger).Render(cmd.Context()); err != nil {
		return err
	}
	return openDashboard(opts, cfg.Paths.HTML)
}

func openDashboard(opts *options, path string) error {
	if !opts.open {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	return browser.OpenFile(abs)
}
