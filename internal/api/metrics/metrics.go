// Package metrics defines and registers all custom Prometheus metrics for the
// SkillLink marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed by the router on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Identity metrics ─────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role:   the role requested at login ("client" or "freelancer")
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// RegistrationsTotal counts accounts created, by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// ── Marketplace metrics ──────────────────────────────────────────────────────

// JobsPostedTotal counts newly posted jobs.
// Label:
//   - budget_type: "fixed" or "hourly"
var JobsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_posted_total",
		Help:      "Total number of jobs posted, by budget type.",
	},
	[]string{"budget_type"},
)

// BidsSubmittedTotal counts bids accepted by the store.
var BidsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_submitted_total",
		Help:      "Total number of bids submitted.",
	},
)

// IdempotentReplaysTotal counts requests answered from a stored Idempotency-Key.
// Label:
//   - resource: "job" or "bid"
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed from an Idempotency-Key.",
	},
	[]string{"resource"},
)

// JobSearchResults observes how many jobs a search returned.
var JobSearchResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_search_results",
		Help:      "Number of jobs returned per search request.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	},
)

// ── Activity pipeline metrics ────────────────────────────────────────────────

// ActivityRecordedTotal counts activity events written to the sink.
// Label:
//   - kind: the activity kind (e.g. "job_posted", "bid_submitted")
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of activity events recorded.",
	},
	[]string{"kind"},
)

// ActivityErrorsTotal counts activity events the sink failed to record.
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed to record.",
	},
	[]string{"kind"},
)

// ActivityDroppedTotal counts events dropped because a worker queue was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity events dropped on a full queue.",
	},
)

// ActivityQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityRecordDuration measures how long the sink takes per event.
var ActivityRecordDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_record_duration_seconds",
		Help:      "Duration of a single activity sink write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
