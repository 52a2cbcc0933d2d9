package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgoulet/dugout/config"
	"github.com/rgoulet/dugout/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the configured schedule against the recovery tracker",
	RunE:  runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tracker, src, log, err := buildTracker(cfg, "simulate")
	if err != nil {
		return err
	}
	driver := sim.NewDriver(cfg.Sim, tracker, src, log)
	logs, err := driver.Run()
	if err != nil {
		return err
	}
	log.Infof("simulated %d games over %d days across %d teams",
		len(logs), cfg.Sim.Days, len(cfg.Sim.Teams))
	fmt.Fprint(cmd.OutOrStdout(), sim.Summarize(logs))
	return nil
}
