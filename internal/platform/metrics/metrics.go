// Package metrics exposes Prometheus counters for the snapshot caches.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "presence"

type Metrics struct {
	reg         *prometheus.Registry
	hits        *prometheus.CounterVec
	misses      *prometheus.CounterVec
	loads       *prometheus.CounterVec
	loadErrors  *prometheus.CounterVec
	loadSeconds *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_hit_total", Help: "Snapshot cache hits.",
		}, []string{"cache"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_miss_total", Help: "Snapshot cache misses (empty or stale).",
		}, []string{"cache"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_load_total", Help: "Successful source loads.",
		}, []string{"cache"}),
		loadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_load_error_total", Help: "Failed source loads.",
		}, []string{"cache"}),
		loadSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "cache_load_seconds", Help: "Source load duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"cache"}),
	}
	reg.MustRegister(
		m.hits, m.misses, m.loads, m.loadErrors, m.loadSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// CacheObserver は cache.Observer を満たす
func (m *Metrics) CacheObserver(name string) *CacheObserver {
	return &CacheObserver{m: m, name: name}
}

type CacheObserver struct {
	m    *Metrics
	name string
}

func (o *CacheObserver) CacheHit()  { o.m.hits.WithLabelValues(o.name).Inc() }
func (o *CacheObserver) CacheMiss() { o.m.misses.WithLabelValues(o.name).Inc() }

func (o *CacheObserver) CacheLoaded(d time.Duration) {
	o.m.loads.WithLabelValues(o.name).Inc()
	o.m.loadSeconds.WithLabelValues(o.name).Observe(d.Seconds())
}

func (o *CacheObserver) CacheLoadFailed() { o.m.loadErrors.WithLabelValues(o.name).Inc() }
