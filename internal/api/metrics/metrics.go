// Package metrics defines and registers all custom Prometheus metrics for
// the profile API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "profile_api"

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts successful refresh-token rotations.
var TokenRefreshesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of successful token refreshes.",
	},
)

// RevocationsTotal counts access tokens revoked through logout.
var RevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revocations_total",
		Help:      "Total number of access tokens revoked on logout.",
	},
)

// ProfileOpsTotal counts profile mutations.
// Label:
//   - op: "create", "update" or "delete"
var ProfileOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_operations_total",
		Help:      "Total number of profile mutations, labelled by operation.",
	},
	[]string{"op"},
)
