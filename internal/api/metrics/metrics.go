// Package metrics defines and registers all custom Prometheus metrics for the
// newsreader service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsreader"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (failures are not broken down further, so
//     the metric cannot be used for username enumeration either)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts, both self-service
// sign-ups and admin creates.
// Label:
//   - origin: "signup" or "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by origin.",
	},
	[]string{"origin"},
)

// ── Saved-article metrics ─────────────────────────────────────────────────────

// ArticlesSavedTotal counts successful bookmark inserts.
var ArticlesSavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_saved_total",
		Help:      "Total number of articles bookmarked.",
	},
)

// ArticlesUnsavedTotal counts successful bookmark removals.
var ArticlesUnsavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_unsaved_total",
		Help:      "Total number of bookmarks removed.",
	},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminOpsTotal counts completed admin directory operations.
// Label:
//   - op: "create", "update", or "delete"
var AdminOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_ops_total",
		Help:      "Total number of completed admin directory operations, by operation.",
	},
	[]string{"op"},
)

// ── News feed metrics ─────────────────────────────────────────────────────────

// NewsfeedRequestsTotal counts upstream news API calls.
// Label:
//   - outcome: "ok", "error", or "upstream_status"
var NewsfeedRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsfeed_requests_total",
		Help:      "Total number of external news feed requests, by outcome.",
	},
	[]string{"outcome"},
)

// NewsfeedRequestDuration measures the round trip to the external news API.
var NewsfeedRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "newsfeed_request_duration_seconds",
		Help:      "Duration of external news feed requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
