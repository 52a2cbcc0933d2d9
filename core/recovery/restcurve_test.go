package recovery

import (
	"testing"

	"github.com/rgoulet/dugout/core/playbalance"
)

func v2Settings(extra map[string]float64) *playbalance.Settings {
	cfg := playbalance.New(map[string]float64{"enableUsageModelV2": 1})
	for k, v := range extra {
		cfg.Set(k, v)
	}
	return cfg
}

func TestRestDaysZeroPitches(t *testing.T) {
	for _, m := range []Model{NewModel(playbalance.New(nil)), NewModel(v2Settings(nil))} {
		if got := m.RestDays(0); got != 0 {
			t.Fatalf("rest days for 0 pitches: got %d", got)
		}
	}
}

func TestRestDaysLegacyCurve(t *testing.T) {
	m := NewModel(playbalance.New(nil))
	cases := []struct{ pitches, want int }{
		{1, 1}, {10, 1}, {11, 2}, {25, 2}, {26, 3}, {45, 3},
		{46, 4}, {70, 4}, {71, 5}, {95, 5}, {96, 6}, {130, 6},
	}
	for _, c := range cases {
		if got := m.RestDays(c.pitches); got != c.want {
			t.Fatalf("legacy rest days for %d pitches: got %d want %d", c.pitches, got, c.want)
		}
	}
}

func TestRestDaysV2Curve(t *testing.T) {
	m := NewModel(v2Settings(nil))
	cases := []struct{ pitches, want int }{
		{1, 0}, {10, 0}, {11, 1}, {20, 1}, {21, 2}, {35, 2},
		{36, 3}, {50, 3}, {51, 4}, {70, 4}, {71, 5}, {95, 5}, {96, 6},
	}
	for _, c := range cases {
		if got := m.RestDays(c.pitches); got != c.want {
			t.Fatalf("v2 rest days for %d pitches: got %d want %d", c.pitches, got, c.want)
		}
	}
}

func TestRestDaysMonotonic(t *testing.T) {
	for _, m := range []Model{NewModel(playbalance.New(nil)), NewModel(v2Settings(nil))} {
		prev := 0
		for p := 0; p <= 150; p++ {
			got := m.RestDays(p)
			if got < prev {
				t.Fatalf("rest days decreased at %d pitches: %d -> %d", p, prev, got)
			}
			if got < 0 || got > 6 {
				t.Fatalf("rest days out of range at %d pitches: %d", p, got)
			}
			prev = got
		}
	}
}

func TestRestDaysReadsLiveThresholds(t *testing.T) {
	cfg := v2Settings(nil)
	m := NewModel(cfg)
	if got := m.RestDays(30); got != 2 {
		t.Fatalf("before override: got %d want 2", got)
	}
	cfg.Set("restDaysPitchesLvl1", 30)
	if got := m.RestDays(30); got != 1 {
		t.Fatalf("after override: got %d want 1", got)
	}
}
