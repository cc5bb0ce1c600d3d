// Package metrics defines the custom Prometheus metrics of the forum API.
// Every metric is registered with the default registry on package init.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// ── Domain counters ───────────────────────────────────────────────────────────

var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)

// CommentsRejectedTotal counts comments refused before insert.
// Label:
//   - reason: "post_not_found", "forbidden" or "rate_limited"
var CommentsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_rejected_total",
		Help:      "Total number of comments rejected, by reason.",
	},
	[]string{"reason"},
)

// UsersForbiddenTotal counts ids appended to forbidden lists, duplicates included.
var UsersForbiddenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_forbidden_total",
		Help:      "Total number of user ids appended to post forbidden lists.",
	},
)

// ── Store ─────────────────────────────────────────────────────────────────────

// StoreQueryDuration measures reads and writes against the document store.
// Labels:
//   - collection: "users", "posts" or "comments"
//   - op: "find", "find_one", "find_by_ids", "insert" or "update"
var StoreQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_query_duration_seconds",
		Help:      "Duration of document store reads and writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collection", "op"},
)

// ObserveQuery records the time elapsed since start. Use with defer:
//
//	defer metrics.ObserveQuery("posts", "find", time.Now())
func ObserveQuery(collection, op string, start time.Time) {
	StoreQueryDuration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}
