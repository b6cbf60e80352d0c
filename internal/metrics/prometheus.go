// Package metrics provides Prometheus metrics for reflex training sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the responses counter.
const (
	OutcomeCorrect = "correct"
	OutcomeWrong   = "wrong"
)

// Manager owns the reflex metrics. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace       string
	reactionBuckets []float64
	registry        *prometheus.Registry

	cuesEmitted    *prometheus.CounterVec
	responses      *prometheus.CounterVec
	reactionTime   prometheus.Histogram
	activeSessions prometheus.Gauge
}

// NewManager creates a metrics manager. Unless WithRegistry is given, it uses
// a fresh registry so Go runtime collectors are not exported.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "reflex",
		reactionBuckets: []float64{0.15, 0.25, 0.35, 0.5, 0.75, 1, 1.5, 2, 3, 5},
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cuesEmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cues_emitted_total",
		Help:      "Total number of cues presented, by cue",
	}, []string{"cue"})

	m.responses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "responses_total",
		Help:      "Total number of scored responses, by outcome",
	}, []string{"outcome"})

	m.reactionTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "reaction_seconds",
		Help:      "Active time between a cue and the player's response",
		Buckets:   m.reactionBuckets,
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "active_sessions",
		Help:      "Number of sessions currently connected",
	})
}

// RecordCue counts an emitted cue.
func (m *Manager) RecordCue(cue string) {
	if m == nil {
		return
	}
	m.cuesEmitted.WithLabelValues(cue).Inc()
}

// RecordResponse counts a scored response and observes its reaction time.
func (m *Manager) RecordResponse(correct bool, reaction time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeWrong
	if correct {
		outcome = OutcomeCorrect
	}
	m.responses.WithLabelValues(outcome).Inc()
	m.reactionTime.Observe(reaction.Seconds())
}

// SessionStarted increments the active sessions gauge.
func (m *Manager) SessionStarted() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionEnded decrements the active sessions gauge.
func (m *Manager) SessionEnded() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// Registry returns the registry backing the manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the manager's registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
