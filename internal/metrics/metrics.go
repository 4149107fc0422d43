package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutorboard", Name: "upstream_requests_total", Help: "Requests issued to the platform API",
	})
	UpstreamErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutorboard", Name: "upstream_errors_total", Help: "Failed platform API requests",
	})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutorboard", Name: "query_cache_hits_total", Help: "Query cache hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutorboard", Name: "query_cache_misses_total", Help: "Query cache misses",
	})
	CacheStaleDrops = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutorboard", Name: "query_cache_stale_drops_total", Help: "Fetch results discarded because the key was invalidated mid-flight",
	})
)

func init() {
	prometheus.MustRegister(UpstreamRequests, UpstreamErrors, CacheHits, CacheMisses, CacheStaleDrops)
}

func Handler() http.Handler { return promhttp.Handler() }
