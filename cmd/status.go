package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgoulet/dugout/config"
	"github.com/rgoulet/dugout/core/recovery"
)

var statusDate string

var statusCmd = &cobra.Command{
	Use:   "status <team-id>",
	Short: "Show a team's bullpen availability for a date",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusDate, "date", "", "game date (YYYY-MM-DD), defaults to today")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tracker, _, _, err := buildTracker(cfg, "status")
	if err != nil {
		return err
	}

	day := recovery.Day(time.Now())
	if statusDate != "" {
		day = recovery.ParseDate(statusDate)
		if day.Equal(recovery.Epoch()) {
			return fmt.Errorf("invalid date %q", statusDate)
		}
	}

	teamID := args[0]
	statuses := tracker.BullpenGameStatus(teamID, day)
	pids := make([]string, 0, len(statuses))
	for pid := range statuses {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PITCHER\tAVAILABLE\tREASON\tREST UNTIL\tLAST\tAPPS3\tAPPS7\tCONSEC\tBUDGET")
	for _, pid := range pids {
		st := statuses[pid]
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%d\t%d\t%d\t%d\t%.0f%%\n",
			pid, st.Available, st.Reason, recovery.FormatDate(st.AvailableOn),
			st.LastPitches, st.Apps3, st.Apps7, st.ConsecutiveDays, st.AvailablePct*100)
	}
	return w.Flush()
}
