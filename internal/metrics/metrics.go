package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sandevgo/edagent/internal/core"
)

const namespace = "edagent"

// Metrics reports conversation activity. It satisfies the orchestrator's
// Recorder interface.
type Metrics struct {
	turns        *prometheus.CounterVec
	turnDuration *prometheus.HistogramVec
	fallbacks    *prometheus.CounterVec
}

// MustNew registers the collectors on reg and panics on duplicate
// registration. Tests pass a fresh prometheus.NewRegistry().
// activeUsers may be nil.
func MustNew(reg prometheus.Registerer, activeUsers func() int) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "conversation",
				Name:      "turns_total",
				Help:      "Handled user turns by intent and outcome.",
			},
			[]string{"intent", "outcome"},
		),
		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "conversation",
				Name:      "turn_duration_seconds",
				Help:      "Wall time of a user turn including collaborator calls.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 45},
			},
			[]string{"intent"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "conversation",
				Name:      "fallbacks_total",
				Help:      "Deterministic fallbacks served instead of AI output.",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(m.turns, m.turnDuration, m.fallbacks)

	if activeUsers != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "conversation",
				Name:      "active_users",
				Help:      "Users with conversation state held in memory.",
			},
			func() float64 { return float64(activeUsers()) },
		))
	}
	return m
}

func intentLabel(intent core.Intent) string {
	if intent == "" {
		return "unknown"
	}
	return string(intent)
}

func (m *Metrics) TurnCompleted(intent core.Intent, outcome string, elapsed time.Duration) {
	label := intentLabel(intent)
	m.turns.WithLabelValues(label, outcome).Inc()
	m.turnDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}

func (m *Metrics) FallbackUsed(kind string) {
	m.fallbacks.WithLabelValues(kind).Inc()
}
