package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgoulet/dugout/config"
	"github.com/rgoulet/dugout/sim"
)

var calibrateDays int

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Replay a seeded schedule and report usage distributions",
	RunE:  runCalibrate,
}

func init() {
	calibrateCmd.Flags().IntVar(&calibrateDays, "days", 0, "override the configured schedule length")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if calibrateDays > 0 {
		cfg.Sim.Days = calibrateDays
	}
	tracker, src, log, err := buildTracker(cfg, "calibrate")
	if err != nil {
		return err
	}
	driver := sim.NewDriver(cfg.Sim, tracker, src, log)
	logs, err := driver.Run()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), sim.Summarize(logs))
	return nil
}
