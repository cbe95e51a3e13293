// Package metrics exposes Prometheus collectors for the FAQ assistant.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for searches.
const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
)

// Collector holds the assistant's metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	topScore       prometheus.Histogram
	corpusSize     prometheus.Gauge
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New creates a collector with every metric registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_searches_total",
				Help: "Total number of FAQ searches",
			},
			[]string{"source", "outcome"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "faq_search_duration_seconds",
				Help:    "Time spent ranking FAQ candidates",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"source"},
		),
		topScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "faq_top_score",
				Help:    "Relevance score of the best hit for matched searches",
				Buckets: []float64{5, 10, 20, 30, 50, 75, 100, 150},
			},
		),
		corpusSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "faq_corpus_size",
				Help: "Number of active FAQ records considered by the last search",
			},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "faq_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	c.registry.MustRegister(
		c.searches,
		c.searchDuration,
		c.topScore,
		c.corpusSize,
		c.requests,
		c.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveSearch records one completed search.
func (c *Collector) ObserveSearch(source string, took time.Duration, hits int, topScore float64) {
	if c == nil {
		return
	}
	outcome := OutcomeNoMatch
	if hits > 0 {
		outcome = OutcomeMatched
		c.topScore.Observe(topScore)
	}
	c.searches.WithLabelValues(source, outcome).Inc()
	c.searchDuration.WithLabelValues(source).Observe(took.Seconds())
}

// SetCorpusSize records how many candidates the last search ranked.
func (c *Collector) SetCorpusSize(n int) {
	if c == nil {
		return
	}
	c.corpusSize.Set(float64(n))
}

// ObserveRequest records one HTTP request. route is the matched route
// template, not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, took time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
