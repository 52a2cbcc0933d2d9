package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/rgoulet/dugout/core/metrics"
	"github.com/rgoulet/dugout/core/model"
)

func TestPromSinkRecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, sink.RecordStarterAssignment(coremetrics.StarterAssignment{
		TeamID: "ATL", PitcherID: "sp1", Day: day,
	}))
	require.NoError(t, sink.RecordStarterAssignment(coremetrics.StarterAssignment{
		TeamID: "ATL", PitcherID: "sp2", Day: day, Fallback: true,
	}))
	require.NoError(t, sink.RecordAvailabilityCheck(coremetrics.AvailabilityCheck{
		TeamID: "ATL", PitcherID: "cl1", Role: model.RoleCloser, Day: day,
		Available: false, Reason: "third_day_block",
	}))
	require.NoError(t, sink.RecordWorkload(coremetrics.WorkloadEvent{
		TeamID: "ATL", PitcherID: "cl1", Role: model.RoleCloser, Day: day,
		Pitches: 18, Kind: "game",
	}))

	ps := sink.(*PromSink)
	assert.Equal(t, 1.0, testutil.ToFloat64(ps.assignments.WithLabelValues("ATL", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ps.assignments.WithLabelValues("ATL", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ps.checks.WithLabelValues("CL", "third_day_block")))
	assert.Equal(t, 1, testutil.CollectAndCount(ps.workload, "pitcher_workload_pitches"))
}

func TestPromSinkReregisterReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordStarterAssignment(coremetrics.StarterAssignment{TeamID: "NYM"}))
	require.NoError(t, second.RecordStarterAssignment(coremetrics.StarterAssignment{TeamID: "NYM"}))

	ps := second.(*PromSink)
	assert.Equal(t, 2.0, testutil.ToFloat64(ps.assignments.WithLabelValues("NYM", "false")),
		"both sinks share one collector")
}
