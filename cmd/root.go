package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgoulet/dugout/config"
	corelogger "github.com/rgoulet/dugout/core/logger"
	coremetrics "github.com/rgoulet/dugout/core/metrics"
	"github.com/rgoulet/dugout/core/playbalance"
	"github.com/rgoulet/dugout/core/recovery"
	"github.com/rgoulet/dugout/infra/logger"
	"github.com/rgoulet/dugout/infra/metrics"
	"github.com/rgoulet/dugout/infra/roster"
	"github.com/rgoulet/dugout/infra/state"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dugout",
	Short: "Pitcher rest, workload and rotation tracking",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(simulateCmd, statusCmd, calibrateCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// buildTracker wires the tracker from configuration: CSV roster source,
// file-backed store, zerolog logging and the configured metrics sink.
func buildTracker(cfg *config.Config, component string) (*recovery.Tracker, *roster.CSVSource, corelogger.Logger, error) {
	log := logger.New(component)

	var sink coremetrics.UsageSink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		promSink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = promSink
		go func() {
			if err := metrics.StartPromServer(cfg.Metrics.PrometheusPort); err != nil {
				log.Errorf("prom server: %v", err)
			}
		}()
	}

	src := roster.NewCSVSource(cfg.PlayersFile, cfg.RosterDir, log)
	settings := playbalance.New(cfg.PlayBalance)
	tracker := recovery.New(settings, src, state.NewFileStore(cfg.StatePath), log, sink)
	return tracker, src, log, nil
}
