// Package metrics defines and registers all custom Prometheus metrics for
// the dealership site. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealership"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials), or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "rejected" (validation), or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// AuthRedirectsTotal counts requests turned away by the auth gate.
// Label:
//   - reason: "unauthenticated" (no/invalid token) or "forbidden" (role)
var AuthRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_redirects_total",
		Help:      "Total number of gate redirects to the login page, by reason.",
	},
	[]string{"reason"},
)

// FormRejectionsTotal counts form submissions re-rendered with validation
// errors.
// Label:
//   - form: the form identifier (e.g. "register", "add_inventory")
var FormRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_rejections_total",
		Help:      "Total number of form submissions rejected by validation, by form.",
	},
	[]string{"form"},
)
