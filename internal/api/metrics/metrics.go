// Package metrics defines and registers the gateway's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// ── Upstream forwarding ──────────────────────────────────────────────────────

// UpstreamAttemptsTotal counts individual connection attempts against the
// order service.
// Label:
//   - outcome: "response" (any HTTP response received) or "dial_error"
var UpstreamAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_attempts_total",
		Help:      "Total connection attempts against the order service, by outcome.",
	},
	[]string{"outcome"},
)

// UpstreamRetriesTotal counts backoff sleeps taken before re-dialing the
// order service.
var UpstreamRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_retries_total",
		Help:      "Total retries performed after a connection-level failure.",
	},
)

// UpstreamUnavailableTotal counts forwards that exhausted every attempt.
var UpstreamUnavailableTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_unavailable_total",
		Help:      "Total forwards that failed all connection attempts.",
	},
)

// ── Response cache ───────────────────────────────────────────────────────────

// CacheRequestsTotal counts read-through cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total order status cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Auth ─────────────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected requests on protected routes.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_user", "disabled"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total authentication failures, by reason.",
	},
	[]string{"reason"},
)

// ── Orders ───────────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders successfully created through the gateway.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total orders successfully created via the gateway.",
	},
)
