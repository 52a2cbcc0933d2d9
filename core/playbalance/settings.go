package playbalance

import (
	"fmt"

	"github.com/rgoulet/dugout/core/model"
)

// defaults holds every usage-model key with its fallback value. Role-keyed
// metrics are spelled <metric>_<ROLE>; the MR variant doubles as the
// fallback for unknown roles.
var defaults = map[string]float64{
	"enableUsageModelV2":        0,
	"restDaysPitchesLvl0":       10,
	"restDaysPitchesLvl1":       20,
	"restDaysPitchesLvl2":       35,
	"restDaysPitchesLvl3":       50,
	"restDaysPitchesLvl4":       70,
	"restDaysPitchesLvl5":       95,
	"b2bMaxPriorPitches":        20,
	"forbidThirdConsecutiveDay": 1,
	"warmupTaxPitches":          15,

	// Reserved multiplier, parsed but not applied anywhere yet.
	"pitchBudgetExhaustionPenaltyScale": 1,

	"maxApps3Day_SP": 1,
	"maxApps3Day_CL": 2,
	"maxApps3Day_SU": 2,
	"maxApps3Day_MR": 3,
	"maxApps3Day_LR": 2,

	"maxApps7Day_SP": 2,
	"maxApps7Day_CL": 4,
	"maxApps7Day_SU": 5,
	"maxApps7Day_MR": 5,
	"maxApps7Day_LR": 3,

	"pitchBudgetMultiplier_SP": 2.6,
	"pitchBudgetMultiplier_CL": 1.6,
	"pitchBudgetMultiplier_SU": 1.7,
	"pitchBudgetMultiplier_MR": 1.8,
	"pitchBudgetMultiplier_LR": 2.2,

	"pitchBudgetRecoveryPct_SP": 0.25,
	"pitchBudgetRecoveryPct_CL": 0.45,
	"pitchBudgetRecoveryPct_SU": 0.42,
	"pitchBudgetRecoveryPct_MR": 0.40,
	"pitchBudgetRecoveryPct_LR": 0.35,

	"pitchBudgetAvailThresh_SP": 0.55,
	"pitchBudgetAvailThresh_CL": 0.40,
	"pitchBudgetAvailThresh_SU": 0.38,
	"pitchBudgetAvailThresh_MR": 0.35,
	"pitchBudgetAvailThresh_LR": 0.30,

	"warmupPitchBase_SP": 20,
	"warmupPitchBase_CL": 10,
	"warmupPitchBase_SU": 11,
	"warmupPitchBase_MR": 12,
	"warmupPitchBase_LR": 14,
}

// Settings resolves named numeric tuning values: explicit overrides first,
// then the defaults table. A missing key is never fatal. Lookups read the
// live tables on every call so overrides applied mid-run take effect
// immediately.
type Settings struct {
	overrides map[string]float64
}

// New builds a Settings over the given overrides. The map may be nil.
func New(overrides map[string]float64) *Settings {
	s := &Settings{overrides: map[string]float64{}}
	for k, v := range overrides {
		s.overrides[k] = v
	}
	return s
}

// Set installs or replaces a single override.
func (s *Settings) Set(key string, value float64) {
	if s.overrides == nil {
		s.overrides = map[string]float64{}
	}
	s.overrides[key] = value
}

// Float returns the value for key, falling back to the defaults table and
// finally zero.
func (s *Settings) Float(key string) float64 {
	if s != nil && s.overrides != nil {
		if v, ok := s.overrides[key]; ok {
			return v
		}
	}
	return defaults[key]
}

// Int returns the value for key truncated to an integer.
func (s *Settings) Int(key string) int { return int(s.Float(key)) }

// Bool treats any non-zero value as true.
func (s *Settings) Bool(key string) bool { return s.Float(key) != 0 }

// RoleFloat resolves <metric>_<ROLE>. An override for the exact role wins,
// then an override of the MR variant acting as a blanket value, then the
// defaults table.
func (s *Settings) RoleFloat(metric string, role model.Role) float64 {
	key := fmt.Sprintf("%s_%s", metric, role)
	if s != nil && s.overrides != nil {
		if v, ok := s.overrides[key]; ok {
			return v
		}
		if v, ok := s.overrides[fmt.Sprintf("%s_%s", metric, model.RoleMiddle)]; ok {
			return v
		}
	}
	if v, ok := defaults[key]; ok {
		return v
	}
	return defaults[fmt.Sprintf("%s_%s", metric, model.RoleMiddle)]
}

// RoleInt is RoleFloat truncated to an integer.
func (s *Settings) RoleInt(metric string, role model.Role) int {
	return int(s.RoleFloat(metric, role))
}
