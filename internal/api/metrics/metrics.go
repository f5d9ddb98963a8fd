// Package metrics defines and registers all custom Prometheus metrics for the
// membership auth service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "membership"

// Auth resolution methods and results. A request with an expired bearer token
// and one with no credentials at all both answer 401, but the distinction is
// kept here and in the logs.
const (
	ResolutionSession       = "session"
	ResolutionToken         = "token"
	ResolutionNoCredentials = "none"

	ResultOK              = "ok"
	ResultInvalidToken    = "invalid_token"
	ResultIdentityDeleted = "identity_deleted"
	ResultNoCredentials   = "no_credentials"
)

// AuthResolutionsTotal counts per-request auth resolutions.
// Labels:
//   - method: "session", "token", or "none"
//   - result: "ok", "invalid_token", "identity_deleted", "no_credentials"
var AuthResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_resolutions_total",
		Help:      "Total number of per-request authentication resolutions, by method and result.",
	},
	[]string{"method", "result"},
)

// LoginAttemptsTotal counts credential logins.
// Labels:
//   - mode: "session" (cookie login) or "token" (stateless login)
//   - result: "ok" or "invalid_credentials"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of credential login attempts, by mode and result.",
	},
	[]string{"mode", "result"},
)

// TokensIssuedTotal counts bearer tokens issued.
// Label:
//   - trigger: "login", "session_login", or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by trigger.",
	},
	[]string{"trigger"},
)

// GateDenialsTotal counts role- and balance-gate denials.
// Label:
//   - gate: "role" or "shares"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of authorization gate denials, by gate kind.",
	},
	[]string{"gate"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
)

// AuditDroppedTotal counts audit entries dropped because the recorder buffer
// was full or storage failed. Recording is best-effort by contract.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped instead of blocking a request.",
	},
)
