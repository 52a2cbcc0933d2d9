package recovery

import "github.com/rgoulet/dugout/core/model"

// EnsureBudgetInitialized derives the stamina pool from endurance and role.
// A fresh pool starts full; a role change re-derives the maximum and clamps
// the remaining budget into it. Zero endurance leaves the pitcher
// unconstrained by budget.
func (m Model) EnsureBudgetInitialized(st *PitcherStatus, endurance int, role model.Role) {
	maxBudget := float64(endurance) * m.cfg.RoleFloat("pitchBudgetMultiplier", role)
	if st.MaxBudget == 0 {
		st.MaxBudget = maxBudget
		st.AvailableBudget = maxBudget
		return
	}
	if role != st.LastRole && maxBudget > 0 {
		st.MaxBudget = maxBudget
	}
	if st.AvailableBudget > st.MaxBudget {
		st.AvailableBudget = st.MaxBudget
	}
	if st.AvailableBudget < 0 {
		st.AvailableBudget = 0
	}
}

// ApplyDailyRecovery restores a role-dependent fraction of the maximum
// pool, once per simulated day. No-op for unconstrained pitchers.
func (m Model) ApplyDailyRecovery(st *PitcherStatus, role model.Role) {
	if st.MaxBudget <= 0 {
		return
	}
	st.AvailableBudget += st.MaxBudget * m.cfg.RoleFloat("pitchBudgetRecoveryPct", role)
	if st.AvailableBudget > st.MaxBudget {
		st.AvailableBudget = st.MaxBudget
	}
}

// ApplyBudgetPenalty charges pitch-equivalents against the pool. Game
// pitches, warmup costs and explicit penalties all consume the same pool.
// The role parameter is carried for the reserved exhaustion-penalty scale.
func (m Model) ApplyBudgetPenalty(st *PitcherStatus, _ model.Role, amount float64) {
	if st.MaxBudget <= 0 || amount <= 0 {
		return
	}
	st.AvailableBudget -= amount
	if st.AvailableBudget < 0 {
		st.AvailableBudget = 0
	}
}

// AvailableFraction returns available/max, or 1 when unconstrained.
func (st *PitcherStatus) AvailableFraction() float64 {
	if st.MaxBudget <= 0 {
		return 1
	}
	return st.AvailableBudget / st.MaxBudget
}

// WarmupCost is the synthetic pitch-equivalent charged for a warmup
// session: the tracked pitch count when known, otherwise the flat tax.
func (m Model) WarmupCost(trackedPitches int) int {
	if trackedPitches > 0 {
		return trackedPitches
	}
	return m.cfg.Int("warmupTaxPitches")
}
