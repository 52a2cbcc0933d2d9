package recovery

import (
	"testing"
	"time"

	"github.com/rgoulet/dugout/core/model"
	"github.com/rgoulet/dugout/core/playbalance"
)

func date(s string) time.Time { return ParseDate(s) }

func appearance(st *PitcherStatus, day string, pitches int) {
	st.addEntry(UsageEntry{Date: date(day), Pitches: pitches, Appeared: true})
}

func TestCheckLegacyModeOnlyRestGate(t *testing.T) {
	e := NewEngine(NewModel(playbalance.New(nil)))
	st := &PitcherStatus{AvailableOn: date("2025-04-05")}
	if ok, reason := e.Check(st, model.RoleMiddle, date("2025-04-04")); ok || reason != ReasonLegacyRest {
		t.Fatalf("resting pitcher: got ok=%t reason=%s", ok, reason)
	}
	// Legacy mode ignores every reliever gate past rest.
	appearance(st, "2025-04-03", 30)
	appearance(st, "2025-04-04", 30)
	if ok, reason := e.Check(st, model.RoleMiddle, date("2025-04-05")); !ok || reason != ReasonOK {
		t.Fatalf("legacy mode: got ok=%t reason=%s", ok, reason)
	}
}

func TestCheckRestGateV2(t *testing.T) {
	e := NewEngine(NewModel(v2Settings(nil)))
	st := &PitcherStatus{AvailableOn: date("2025-04-05")}
	if ok, reason := e.Check(st, model.RoleCloser, date("2025-04-04")); ok || reason != ReasonRest {
		t.Fatalf("got ok=%t reason=%s", ok, reason)
	}
	if ok, _ := e.Check(st, model.RoleCloser, date("2025-04-05")); !ok {
		t.Fatalf("available_on is inclusive")
	}
}

func TestCheckStarterExemptFromRelieverGates(t *testing.T) {
	e := NewEngine(NewModel(v2Settings(nil)))
	st := &PitcherStatus{MaxBudget: 100, AvailableBudget: 1}
	appearance(st, "2025-04-02", 30)
	appearance(st, "2025-04-03", 30)
	if ok, reason := e.Check(st, model.RoleStarter, date("2025-04-04")); !ok || reason != ReasonOK {
		t.Fatalf("starter gated: ok=%t reason=%s", ok, reason)
	}
}

func TestCheckBudgetGate(t *testing.T) {
	e := NewEngine(NewModel(v2Settings(nil)))
	st := &PitcherStatus{MaxBudget: 100, AvailableBudget: 30}
	// MR threshold is 0.35; 30% available fails.
	if ok, reason := e.Check(st, model.RoleMiddle, date("2025-04-04")); ok || reason != ReasonBudget {
		t.Fatalf("got ok=%t reason=%s", ok, reason)
	}
	st.AvailableBudget = 40
	if ok, _ := e.Check(st, model.RoleMiddle, date("2025-04-04")); !ok {
		t.Fatalf("40%% available should pass the MR gate")
	}
}

func TestCheckThirdConsecutiveDayBlock(t *testing.T) {
	e := NewEngine(NewModel(v2Settings(nil)))
	st := &PitcherStatus{}
	appearance(st, "2025-04-01", 10)
	appearance(st, "2025-04-02", 10)
	if ok, reason := e.Check(st, model.RoleCloser, date("2025-04-03")); ok || reason != ReasonThirdDay {
		t.Fatalf("got ok=%t reason=%s", ok, reason)
	}
	// Disabled by config.
	e2 := NewEngine(NewModel(v2Settings(map[string]float64{
		"forbidThirdConsecutiveDay": 0,
		"maxApps3Day_CL":            3,
	})))
	if ok, _ := e2.Check(st, model.RoleCloser, date("2025-04-03")); !ok {
		t.Fatalf("third-day gate should be off")
	}
}

func TestCheckBackToBackPitchCount(t *testing.T) {
	e := NewEngine(NewModel(v2Settings(nil)))
	st := &PitcherStatus{}
	appearance(st, "2025-04-01", 25)
	if ok, reason := e.Check(st, model.RoleSetup, date("2025-04-02")); ok || reason != ReasonB2B {
		t.Fatalf("heavy b2b: got ok=%t reason=%s", ok, reason)
	}
	st2 := &PitcherStatus{}
	appearance(st2, "2025-04-01", 15)
	if ok, _ := e.Check(st2, model.RoleSetup, date("2025-04-02")); !ok {
		t.Fatalf("light b2b should pass")
	}
}

func TestCheckRollingCaps(t *testing.T) {
	cfg := v2Settings(map[string]float64{
		"forbidThirdConsecutiveDay": 0,
		"maxApps3Day_MR":            3,
	})
	e := NewEngine(NewModel(cfg))
	st := &PitcherStatus{}
	appearance(st, "2025-04-01", 10)
	appearance(st, "2025-04-02", 10)
	appearance(st, "2025-04-03", 10)
	// Three appearances in the prior three days trip cap3 regardless of
	// rest or budget state.
	if ok, reason := e.Check(st, model.RoleMiddle, date("2025-04-04")); ok || reason != ReasonCap3 {
		t.Fatalf("got ok=%t reason=%s", ok, reason)
	}

	cfg.Set("maxApps3Day_MR", 4)
	cfg.Set("maxApps7Day_MR", 3)
	if ok, reason := e.Check(st, model.RoleMiddle, date("2025-04-04")); ok || reason != ReasonCap7 {
		t.Fatalf("got ok=%t reason=%s", ok, reason)
	}
}

func TestWarmupEntriesNeverCountAsAppearances(t *testing.T) {
	e := NewEngine(NewModel(v2Settings(nil)))
	st := &PitcherStatus{}
	st.addEntry(UsageEntry{Date: date("2025-04-01"), Pitches: 15, WarmedOnly: true})
	st.addEntry(UsageEntry{Date: date("2025-04-02"), Pitches: 15, WarmedOnly: true})
	if ok, reason := e.Check(st, model.RoleMiddle, date("2025-04-03")); !ok {
		t.Fatalf("warmups gated an arm: reason=%s", reason)
	}
	if got := st.consecutiveAppearanceDays(date("2025-04-03")); got != 0 {
		t.Fatalf("consecutive days from warmups: got %d", got)
	}
}
