package metrics

import (
	"time"

	"github.com/rgoulet/dugout/core/model"
)

// Config defines settings for the metrics exposition.
type Config struct {
	PrometheusEnabled bool `json:"prometheus_enabled"`
	PrometheusPort    int  `json:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == 0 {
		c.PrometheusPort = 9105
	}
}

// StarterAssignment records a rotation decision for a team on a day.
type StarterAssignment struct {
	TeamID    string
	PitcherID string
	Day       time.Time
	// Fallback marks assignments where no rotation arm had finished resting.
	Fallback bool
}

// AvailabilityCheck records one bullpen availability decision.
type AvailabilityCheck struct {
	TeamID    string
	PitcherID string
	Role      model.Role
	Day       time.Time
	Available bool
	Reason    string
}

// WorkloadEvent records pitch-equivalents charged against a pitcher.
type WorkloadEvent struct {
	TeamID    string
	PitcherID string
	Role      model.Role
	Day       time.Time
	Pitches   int
	// Kind is "game", "warmup" or "penalty".
	Kind string
}

// UsageSink records usage-model events for observability purposes.
type UsageSink interface {
	RecordStarterAssignment(ev StarterAssignment) error
	RecordAvailabilityCheck(ev AvailabilityCheck) error
	RecordWorkload(ev WorkloadEvent) error
}

// NopSink implements UsageSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordStarterAssignment(StarterAssignment) error { return nil }
func (NopSink) RecordAvailabilityCheck(AvailabilityCheck) error { return nil }
func (NopSink) RecordWorkload(WorkloadEvent) error              { return nil }
