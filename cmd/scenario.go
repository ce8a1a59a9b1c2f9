package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/scenario"
	"github.com/kilianp07/taxisim/core/simulation"
	"github.com/kilianp07/taxisim/infra/logger"
	"github.com/kilianp07/taxisim/infra/render"
	"github.com/kilianp07/taxisim/pkg/export"
)

var renderEvery int

var scenarioCmd = &cobra.Command{
	Use:   "scenario FILE",
	Short: "Replay a scripted scenario and check its expectations",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

func init() {
	scenarioCmd.Flags().IntVar(&renderEvery, "render", 0, "draw the grid every N ticks, 0 disables")
	rootCmd.AddCommand(scenarioCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := loadConfig(); err != nil {
		return err
	}
	sc, err := scenario.Load(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	opts := scenario.Options{Logger: logger.New("scenario")}
	if renderEvery > 0 {
		opts.Renderer = func(reg city.Registry, stats metrics.StatsProvider) (simulation.Actor, error) {
			return render.NewTextRenderer(reg, stats, cmd.OutOrStdout(), renderEvery), nil
		}
	}
	r, err := scenario.Prepare(sc, opts)
	if err != nil {
		return err
	}
	sum, err := r.Execute(ctx)
	if err != nil {
		return err
	}
	if err := export.Write(cmd.OutOrStdout(), format, sum); err != nil {
		return err
	}
	if err := r.Verify(sum); err != nil {
		return fmt.Errorf("scenario %s failed: %w", sc.Name, err)
	}
	return nil
}
