// Package metrics defines and registers all custom Prometheus metrics for
// the user-management API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Registration happens at import time via promauto; request-level metrics
// (duration, status codes) come from the echoprometheus middleware and are
// not duplicated here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authy"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful account registrations.",
	},
)

// AuthRejectionsTotal counts requests rejected by the authentication gate.
// The reason label carries the internal cause; the HTTP response is a
// uniform 401 regardless.
// Label:
//   - reason: "missing_header", "invalid_header", "token_expired", "token_invalid"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authentication middleware, by internal reason.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts requests rejected by the role check.
// Label:
//   - path: the route pattern that denied access
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of authenticated requests denied by role-based access control, by route.",
	},
	[]string{"path"},
)
