package recovery

import (
	"fmt"

	"github.com/rgoulet/dugout/core/playbalance"
)

// Model computes rest-day requirements and stamina-budget transitions.
// All methods re-read their tuning values per call so configuration edits
// take effect immediately.
type Model struct {
	cfg *playbalance.Settings
}

// NewModel builds a Model over the given settings.
func NewModel(cfg *playbalance.Settings) Model { return Model{cfg: cfg} }

// Settings exposes the underlying tuning table.
func (m Model) Settings() *playbalance.Settings { return m.cfg }

// v2Enabled reports whether the V2 usage model is switched on.
func (m Model) v2Enabled() bool { return m.cfg.Bool("enableUsageModelV2") }

// RestDays maps a pitch count to required rest days in [0, 6]. Zero pitches
// always yields zero days. The result is non-decreasing in pitches.
func (m Model) RestDays(pitches int) int {
	if pitches <= 0 {
		return 0
	}
	if !m.v2Enabled() {
		return legacyRestDays(pitches)
	}
	for lvl := 0; lvl <= 5; lvl++ {
		if pitches <= m.cfg.Int(fmt.Sprintf("restDaysPitchesLvl%d", lvl)) {
			return lvl
		}
	}
	return 6
}

// legacyRestDays is the fixed step curve used before the V2 model.
func legacyRestDays(pitches int) int {
	switch {
	case pitches <= 0:
		return 0
	case pitches <= 10:
		return 1
	case pitches <= 25:
		return 2
	case pitches <= 45:
		return 3
	case pitches <= 70:
		return 4
	case pitches <= 95:
		return 5
	default:
		return 6
	}
}
