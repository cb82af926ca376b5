// Package metrics defines and registers all custom Prometheus metrics for the
// transaction tracking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry through promauto; the
// /metrics route serves them together with the echoprometheus HTTP metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

const namespace = "tracking"

// ── Tracking ID metrics ───────────────────────────────────────────────────────

// TrackingIDCollisionsTotal counts candidate tracking IDs rejected by the
// store's uniqueness constraint.
var TrackingIDCollisionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_id_collisions_total",
		Help:      "Total number of generated tracking IDs that collided with an existing one.",
	},
)

// TrackingIDExhaustedTotal counts creates that gave up after every attempt collided.
var TrackingIDExhaustedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_id_exhausted_total",
		Help:      "Total number of transaction creates that exhausted tracking ID attempts.",
	},
)

// ── Transaction metrics ───────────────────────────────────────────────────────

// TransactionsCreatedTotal counts newly created transactions.
// Label:
//   - status_id: the initial status of the transaction
var TransactionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Total number of transactions created, by initial status.",
	},
	[]string{"status_id"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsTotal counts transaction event deliveries.
// Labels:
//   - kind: "transaction.created", "transaction.updated" or "transaction.deleted"
//   - result: "published", "failed" or "dropped"
var EventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "Total number of transaction events, by kind and delivery result.",
	},
	[]string{"kind", "result"},
)

// Recorder adapts the package-level metrics to the service and dispatcher
// recorder interfaces.
type Recorder struct{}

func (Recorder) TrackingIDCollision() { TrackingIDCollisionsTotal.Inc() }

func (Recorder) TrackingIDExhausted() { TrackingIDExhaustedTotal.Inc() }

func (Recorder) TransactionCreated(statusID int) {
	TransactionsCreatedTotal.WithLabelValues(strconv.Itoa(statusID)).Inc()
}

func (Recorder) EventPublished(kind domain.EventKind) {
	EventsTotal.WithLabelValues(string(kind), "published").Inc()
}

func (Recorder) EventFailed(kind domain.EventKind) {
	EventsTotal.WithLabelValues(string(kind), "failed").Inc()
}

func (Recorder) EventDropped(kind domain.EventKind) {
	EventsTotal.WithLabelValues(string(kind), "dropped").Inc()
}
