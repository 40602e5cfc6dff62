// Package metrics defines the application-level Prometheus metrics. HTTP
// request metrics come from echoprometheus; this package only covers what the
// middleware cannot see.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventmanager"

// Label values.
const (
	ActionSignup = "signup"
	ActionLogin  = "login"
	ActionLogout = "logout"

	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"

	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Metrics groups the collectors registered against one registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// AuthAttempts counts signup, login and logout attempts.
	// Labels:
	//   - action: signup | login | logout
	//   - result: success | rejected | error
	AuthAttempts *prometheus.CounterVec

	// EventMutations counts successful event writes.
	// Label:
	//   - operation: create | update | delete
	EventMutations *prometheus.CounterVec

	// EventsListed observes how many events the index page rendered.
	EventsListed prometheus.Histogram
}

// New registers the collectors with reg. Passing prometheus.DefaultRegisterer
// exposes them on the default /metrics gatherer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of authentication attempts, by action and result.",
			},
			[]string{"action", "result"},
		),
		EventMutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "event_mutations_total",
				Help:      "Total number of events created, updated or deleted.",
			},
			[]string{"operation"},
		),
		EventsListed: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "events_listed",
				Help:      "Number of events shown per index page render.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 6), // 1 .. 1024
			},
		),
	}
}

func (m *Metrics) AuthAttempt(action, result string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(action, result).Inc()
}

func (m *Metrics) EventMutation(op string) {
	if m == nil {
		return
	}
	m.EventMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) Listed(n int) {
	if m == nil {
		return
	}
	m.EventsListed.Observe(float64(n))
}
