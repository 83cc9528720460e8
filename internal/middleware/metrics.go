package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedQueries counts feed pagination queries by window kind
	// (initial, before, after, range).
	FeedQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_feed_queries_total",
		Help: "Total number of feed pagination queries by window kind",
	}, []string{"window"})

	// PostMutations counts post mutations by operation (create, delete,
	// like, unlike, repost, unrepost).
	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_post_mutations_total",
		Help: "Total number of post mutations by operation",
	}, []string{"operation"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
