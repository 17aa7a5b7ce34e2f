package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// 菜谱写操作, op: create/update/delete
	RecipeWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_recipe_writes_total",
			Help: "Total number of committed recipe writes",
		},
		[]string{"op"},
	)

	// 收藏与购物车变更, ledger: favorites/shopping_cart, op: add/remove
	LedgerChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_ledger_changes_total",
			Help: "Total number of favorite and shopping cart changes",
		},
		[]string{"ledger", "op"},
	)

	// 关注关系变更, op: follow/unfollow
	FollowChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_follow_changes_total",
			Help: "Total number of follow graph changes",
		},
		[]string{"op"},
	)
)

// RecordAPIRequest 记录一次 HTTP 请求
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
