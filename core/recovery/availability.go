package recovery

import (
	"time"

	"github.com/rgoulet/dugout/core/model"
)

// Reason explains why a pitcher is or is not usable on a given day.
type Reason string

const (
	ReasonOK         Reason = "ok"
	ReasonRest       Reason = "rest"
	ReasonLegacyRest Reason = "legacy_rest"
	ReasonBudget     Reason = "budget"
	ReasonThirdDay   Reason = "third_day_block"
	ReasonB2B        Reason = "b2b_block"
	ReasonCap3       Reason = "cap3"
	ReasonCap7       Reason = "cap7"
)

// Engine composes the recovery model with rolling-window history to decide
// whether a pitcher may be used on a date, and why not if not.
type Engine struct {
	model Model
}

// NewEngine builds an Engine over the model.
func NewEngine(m Model) Engine { return Engine{model: m} }

// Check evaluates the availability rules in order and short-circuits at the
// first failing gate. With the V2 model disabled only the rest-day gate
// applies. Starters are exempt from every gate past the rest-day gate.
func (e Engine) Check(st *PitcherStatus, role model.Role, day time.Time) (bool, Reason) {
	day = Day(day)
	cfg := e.model.cfg
	v2 := e.model.v2Enabled()

	if st.AvailableOn.After(day) {
		if !v2 {
			return false, ReasonLegacyRest
		}
		return false, ReasonRest
	}
	if !v2 || role.IsStarter() {
		return true, ReasonOK
	}

	if st.MaxBudget > 0 {
		if st.AvailableFraction() < cfg.RoleFloat("pitchBudgetAvailThresh", role) {
			return false, ReasonBudget
		}
	}

	if cfg.Bool("forbidThirdConsecutiveDay") {
		if st.consecutiveAppearanceDays(day) >= 2 {
			return false, ReasonThirdDay
		}
	}

	if prior, ok := st.appearanceOn(day.AddDate(0, 0, -1)); ok {
		if prior.Pitches > cfg.Int("b2bMaxPriorPitches") {
			return false, ReasonB2B
		}
	}

	if st.appearancesBetween(day.AddDate(0, 0, -3), day) >= cfg.RoleInt("maxApps3Day", role) {
		return false, ReasonCap3
	}
	if st.appearancesBetween(day.AddDate(0, 0, -7), day) >= cfg.RoleInt("maxApps7Day", role) {
		return false, ReasonCap7
	}
	return true, ReasonOK
}
