// Package metrics defines and registers all custom Prometheus metrics for the
// rifa admin BFF. It is the single source of truth for metric names, labels,
// and help strings.
//
// The metrics are registered with the default Prometheus registry at package
// init; Recorder is the adapter the services and the backend client report to.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rifa_admin"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendCallsTotal counts calls to the rifa backend.
// Labels:
//   - endpoint: backend path (e.g. "/vendedor/list")
//   - outcome: "ok", "logical_failure", "unauthorized", "forbidden" or "error"
var BackendCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_calls_total",
		Help:      "Total number of calls to the rifa backend, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// BackendCallDuration measures the round trip of a backend call.
// Label:
//   - endpoint: backend path
var BackendCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_call_duration_seconds",
		Help:      "Duration of calls to the rifa backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "denied" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ForcedLogoutsTotal counts sessions cleared because the backend answered 401.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions cleared after an unauthorized backend response.",
	},
)

// ── Page metrics ──────────────────────────────────────────────────────────────

// StaleResponsesTotal counts list responses discarded because a newer request
// for the same list was issued.
// Label:
//   - list: "vendedores" or "cobradores"
var StaleResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_total",
		Help:      "Total number of list responses discarded as stale.",
	},
	[]string{"list"},
)

// ── Print metrics ─────────────────────────────────────────────────────────────

// PrintFilesTotal counts print-file submissions.
// Labels:
//   - kind: "test" or "production"
//   - result: "success" or "failure"
var PrintFilesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "print_files_total",
		Help:      "Total number of print-file submissions, by kind and result.",
	},
	[]string{"kind", "result"},
)

// PrintAuditQueueDepth tracks the number of print audit records waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PrintAuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of print audit records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// Recorder forwards observations to the package metrics. It satisfies
// ports.Metrics, backend.Observer and queue.DepthObserver.
type Recorder struct{}

// NewRecorder returns a Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (*Recorder) ObserveBackendCall(endpoint, outcome string, elapsed time.Duration) {
	BackendCallsTotal.WithLabelValues(endpoint, outcome).Inc()
	BackendCallDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (*Recorder) LoginAttempt(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func (*Recorder) ForcedLogout() {
	ForcedLogoutsTotal.Inc()
}

func (*Recorder) StaleResponse(list string) {
	StaleResponsesTotal.WithLabelValues(list).Inc()
}

func (*Recorder) PrintFile(kind, result string) {
	PrintFilesTotal.WithLabelValues(kind, result).Inc()
}

func (*Recorder) AuditQueueDepth(workerID string, depth int) {
	PrintAuditQueueDepth.WithLabelValues(workerID).Set(float64(depth))
}
