package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/rgoulet/dugout/core/metrics"
)

// PromSink records usage-model events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	checks      *prometheus.CounterVec
	workload    *prometheus.HistogramVec
}

// NewPromSink registers usage metrics on the default Prometheus registerer.
// The exposition server should be started separately with StartPromServer.
func NewPromSink(cfg coremetrics.Config) (coremetrics.UsageSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.UsageSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rotation_assignments_total",
		Help: "Starter assignments, split by fallback selections",
	}, []string{"team_id", "fallback"})
	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bullpen_availability_checks_total",
		Help: "Availability decisions by outcome reason",
	}, []string{"role", "reason"})
	workload := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pitcher_workload_pitches",
		Help:    "Pitch-equivalents charged per recorded event",
		Buckets: []float64{5, 10, 20, 35, 50, 70, 95, 120},
	}, []string{"role", "kind"})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(checks); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			checks = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(workload); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			workload = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, checks: checks, workload: workload}, nil
}

// RecordStarterAssignment increments the assignment counter.
func (s *PromSink) RecordStarterAssignment(ev coremetrics.StarterAssignment) error {
	s.assignments.WithLabelValues(ev.TeamID, strconv.FormatBool(ev.Fallback)).Inc()
	return nil
}

// RecordAvailabilityCheck increments the per-reason decision counter.
func (s *PromSink) RecordAvailabilityCheck(ev coremetrics.AvailabilityCheck) error {
	s.checks.WithLabelValues(string(ev.Role), ev.Reason).Inc()
	return nil
}

// RecordWorkload observes the charged pitch count.
func (s *PromSink) RecordWorkload(ev coremetrics.WorkloadEvent) error {
	s.workload.WithLabelValues(string(ev.Role), ev.Kind).Observe(float64(ev.Pitches))
	return nil
}

// StartPromServer exposes /metrics on the given port and blocks.
func StartPromServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
