package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/taxisim/app"
	"github.com/kilianp07/taxisim/config"
	"github.com/kilianp07/taxisim/infra/logger"
	"github.com/kilianp07/taxisim/pkg/export"
)

var (
	cfgPath  string
	logLevel string
	ticks    int
	delay    time.Duration
	format   string
)

var rootCmd = &cobra.Command{
	Use:           "taxisim",
	Short:         "Taxi dispatch simulation on a grid",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation and print its report",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", export.FormatJSON, "report format: json or csv")
	rootCmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "number of ticks, overrides simulation.ticks")
	rootCmd.Flags().DurationVar(&delay, "delay", 0, "pause between ticks, overrides simulation.tick_delay_ms")
	runCmd.Flags().AddFlagSet(rootCmd.Flags())
	rootCmd.AddCommand(runCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := logger.Configure(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Writer: os.Stderr}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Simulation.Ticks = ticks
	}
	if cmd.Flags().Changed("delay") {
		cfg.Simulation.TickDelayMS = int(delay / time.Millisecond)
		cfg.Simulation.ZeroDelay = delay <= 0
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	svc, err := app.New(cfg, app.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return export.Write(cmd.OutOrStdout(), format, svc.Summary())
}
