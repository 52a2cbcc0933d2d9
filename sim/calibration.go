package sim

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/rgoulet/dugout/core/model"
)

// RoleSummary aggregates recorded workloads for one role across a run.
type RoleSummary struct {
	Role        model.Role
	Appearances int
	MeanPitches float64
	StdDev      float64
	P50         float64
	P90         float64
}

// Report is the calibration output: per-role workload distributions plus
// bullpen traffic counters.
type Report struct {
	Games             int
	PerRole           []RoleSummary
	WarmupsCharged    int
	AppearancesPerDay float64
}

// Summarize reduces game logs to a calibration report. Distributions use
// gonum's weighted-free estimators over the raw per-appearance pitch
// counts.
func Summarize(logs []GameLog) Report {
	rep := Report{Games: len(logs)}
	pitchesByRole := map[model.Role][]float64{}
	days := map[string]bool{}
	total := 0
	for _, g := range logs {
		days[g.Day.Format("2006-01-02")] = true
		rep.WarmupsCharged += len(g.Warmed)
		for _, u := range g.Usage {
			role := model.NormalizeRole(string(u.Role))
			pitchesByRole[role] = append(pitchesByRole[role], float64(u.Pitches))
			total++
		}
	}
	if len(days) > 0 {
		rep.AppearancesPerDay = float64(total) / float64(len(days))
	}

	roles := make([]model.Role, 0, len(pitchesByRole))
	for role := range pitchesByRole {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	for _, role := range roles {
		xs := pitchesByRole[role]
		sort.Float64s(xs)
		rep.PerRole = append(rep.PerRole, RoleSummary{
			Role:        role,
			Appearances: len(xs),
			MeanPitches: stat.Mean(xs, nil),
			StdDev:      stat.StdDev(xs, nil),
			P50:         stat.Quantile(0.5, stat.Empirical, xs, nil),
			P90:         stat.Quantile(0.9, stat.Empirical, xs, nil),
		})
	}
	return rep
}

// String renders the report as a plain-text table.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "games=%d warmups=%d appearances/day=%.2f\n",
		r.Games, r.WarmupsCharged, r.AppearancesPerDay)
	fmt.Fprintf(&b, "%-4s %6s %8s %8s %8s %8s\n", "role", "apps", "mean", "stddev", "p50", "p90")
	for _, s := range r.PerRole {
		fmt.Fprintf(&b, "%-4s %6d %8.1f %8.1f %8.1f %8.1f\n",
			s.Role, s.Appearances, s.MeanPitches, s.StdDev, s.P50, s.P90)
	}
	return b.String()
}
