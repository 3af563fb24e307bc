// Package metrics defines and registers the custom Prometheus metrics of the
// GMS API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gms2/gms-api/internal/core/ports"
)

const namespace = "gms"

// ── Directory metrics ─────────────────────────────────────────────────────────

// UserOperationsTotal counts user directory operations.
// Labels:
//   - operation: list, create, read, update, delete
//   - result: ok, not_found, invalid, not_implemented, error
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of user directory operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// RolesCreatedTotal counts roles created by the bootstrap.
// Label:
//   - role: the role name (e.g. "Teacher")
var RolesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roles_created_total",
		Help:      "Total number of roles created by the role bootstrap.",
	},
	[]string{"role"},
)

// UserCacheTotal counts user cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_total",
		Help:      "Total number of user cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful self-service registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts registered.",
	},
)

// ── Recorder ──────────────────────────────────────────────────────────────────

// Recorder exposes the counters above through ports.Metrics.
type Recorder struct{}

var _ ports.Metrics = Recorder{}

func NewRecorder() Recorder { return Recorder{} }

func (Recorder) UserOperation(operation, result string) {
	UserOperationsTotal.WithLabelValues(operation, result).Inc()
}

func (Recorder) UserCacheLookup(result string) {
	UserCacheTotal.WithLabelValues(result).Inc()
}

func (Recorder) RoleCreated(role string) {
	RolesCreatedTotal.WithLabelValues(role).Inc()
}

func (Recorder) Login(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

func (Recorder) Registration() {
	RegistrationsTotal.Inc()
}
