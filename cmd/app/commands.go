package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"UsageCast/internal/di"
	"UsageCast/internal/usecase"
	"UsageCast/pkg/config"
)

type rootOptions struct {
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "usagecast",
		Short: "Daily usage aggregation and ARIMA forecasting",
		Long: `usagecast turns raw timestamped usage readings into daily totals,
forecasts a horizon of future values and scores the forecast against held-out data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(opts.configFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "config/config.yaml", "Config file (YAML)")

	rootCmd.AddCommand(aggregateCmd(opts))
	rootCmd.AddCommand(forecastCmd(opts))
	rootCmd.AddCommand(serveCmd(opts))

	return rootCmd
}

// aggregateCmd sums raw readings into the daily file
func aggregateCmd(opts *rootOptions) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate raw readings into daily totals",
		Long: `Reads the raw file leniently, skipping rows that cannot be parsed, books each
reading to its day of record (readings during hour 0 close the previous day) and writes
a Timepoint,Usage file with one row per day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("in") {
				in = opts.cfg.Data.RawPath
			}
			if !cmd.Flags().Changed("out") {
				out = opts.cfg.Data.DailyPath
			}

			pipeline, err := di.InitializePipeline(opts.cfg)
			if err != nil {
				return err
			}
			report, err := pipeline.Aggregate(cmd.Context(), in, out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Aggregated %d rows into %d days (%d skipped) -> %s\n",
				report.Rows, report.Days, report.Skipped, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Raw input file (default data.raw_path)")
	cmd.Flags().StringVar(&out, "out", "", "Daily output file (default data.daily_path)")
	return cmd
}

// forecastCmd runs a train/test forecast and prints the comparison
func forecastCmd(opts *rootOptions) *cobra.Command {
	var (
		train, test string
		horizon     int
		tail        int
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast the test horizon from the training file and evaluate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if !cmd.Flags().Changed("train") {
				train = cfg.Data.TrainPath
			}
			if !cmd.Flags().Changed("test") {
				test = cfg.Data.TestPath
			}
			if !cmd.Flags().Changed("horizon") {
				horizon = cfg.Forecast.Horizon
			}

			pipeline, err := di.InitializePipeline(cfg)
			if err != nil {
				return err
			}
			report, err := pipeline.RunForecast(cmd.Context(), usecase.RunParams{
				TrainPath:      train,
				TestPath:       test,
				Horizon:        horizon,
				Seasonal:       cfg.Forecast.Seasonal,
				SeasonalPeriod: cfg.Forecast.SeasonalPeriod,
			})
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, tail)
		},
	}

	cmd.Flags().StringVar(&train, "train", "", "Training file (default data.train_path)")
	cmd.Flags().StringVar(&test, "test", "", "Test file (default data.test_path)")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Steps to forecast (default forecast.horizon)")
	cmd.Flags().IntVar(&tail, "tail", 10, "History rows to print")
	return cmd
}

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitializeApp(opts.cfg)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}
