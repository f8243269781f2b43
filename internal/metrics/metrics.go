// Package metrics defines all custom Prometheus metrics for the job-board
// client. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobdeck"

// GatewayRequestsTotal counts outbound requests to the backend API.
// Labels:
//   - method: HTTP method
//   - status: numeric response code, or "network_error" when no response
//     arrived at all
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of outbound backend API requests.",
	},
	[]string{"method", "status"},
)

// GatewayRequestDuration measures end-to-end latency of backend calls.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of outbound backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionEventsTotal counts session lifecycle transitions.
// Label:
//   - event: "restore", "restore_discarded", "login", "register", "logout"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// ViewRendersTotal counts view renders by view name and outcome.
// Labels:
//   - view: "home", "job_detail", "dashboard"
//   - state: "ready", "error", "not_found"
var ViewRendersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_renders_total",
		Help:      "Total number of view renders by outcome.",
	},
	[]string{"view", "state"},
)

// GuardRedirectsTotal counts anonymous requests turned away from
// authenticated-only views.
var GuardRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route-guard redirects to the login view.",
	},
)
