package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for ledger activity.
type Metrics struct {
	// Session metrics
	SessionsCreated prometheus.Counter
	SessionsDropped prometheus.Counter
	SessionsActive  prometheus.Gauge

	// Transaction metrics
	TransactionsAdded   *prometheus.CounterVec
	TransactionsDeleted prometheus.Counter
	LedgersCleared      prometheus.Counter

	// Event metrics
	EventsPublished *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec
}

// New creates ledger metrics registered on reg.
// Pass prometheus.DefaultRegisterer to expose them on /metrics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Session metrics
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "saku_sessions_created_total",
			Help: "Total number of sessions created",
		}),
		SessionsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "saku_sessions_dropped_total",
			Help: "Total number of sessions dropped",
		}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "saku_sessions_active",
			Help: "Current number of live sessions",
		}),

		// Transaction metrics
		TransactionsAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saku_transactions_added_total",
				Help: "Total number of transactions added by type",
			},
			[]string{"type"},
		),
		TransactionsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "saku_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		LedgersCleared: factory.NewCounter(prometheus.CounterOpts{
			Name: "saku_ledgers_cleared_total",
			Help: "Total number of ledger resets",
		}),

		// Event metrics
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saku_events_published_total",
				Help: "Total number of events published by type",
			},
			[]string{"event_type"},
		),
		PublishFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saku_event_publish_failures_total",
				Help: "Total number of failed event publishes by type",
			},
			[]string{"event_type"},
		),
	}
}
