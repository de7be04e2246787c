// Package telemetry exports Prometheus metrics for the blog backend.
package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all blog backend Prometheus metrics
type Metrics struct {
	// Content snapshot metrics
	SnapshotRefreshes *prometheus.CounterVec
	SnapshotAge       prometheus.Gauge
	SnapshotPostCount prometheus.Gauge
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	RefreshDuration   prometheus.Histogram
	FallbackServed    prometheus.Counter

	// Lead metrics
	LeadsSubmitted  *prometheus.CounterVec
	LeadsFailed     *prometheus.CounterVec
	LeadDispatchDur *prometheus.HistogramVec

	// Feed metrics
	FeedRequests prometheus.Counter

	// Estimator metrics
	EstimatesComputed prometheus.Counter
}

// Provider wraps the metrics registry
type Provider struct {
	Metrics *Metrics
}

var (
	providerOnce sync.Once
	provider     *Provider
)

// NewProvider initializes Prometheus metrics. Safe to call more than once;
// metrics register against the default registry exactly once per process.
func NewProvider() *Provider {
	providerOnce.Do(func() {
		provider = &Provider{Metrics: initMetrics()}
	})
	return provider
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initContentMetrics(m)
	initLeadMetrics(m)
	initFeedMetrics(m)
	return m
}

func initContentMetrics(m *Metrics) {
	m.SnapshotRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_snapshot_refreshes_total",
		Help: "Total content snapshot refreshes by outcome (success, failure)",
	}, []string{"outcome"})

	m.SnapshotAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blog_snapshot_age_seconds",
		Help: "Age of the in-memory content snapshot",
	})

	m.SnapshotPostCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blog_snapshot_post_count",
		Help: "Number of published posts in the current snapshot",
	})

	m.CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_snapshot_cache_hits_total",
		Help: "Snapshot loads served from the shared cache",
	})

	m.CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_snapshot_cache_misses_total",
		Help: "Snapshot loads that missed the shared cache",
	})

	m.RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blog_snapshot_refresh_duration_seconds",
		Help:    "Time to rebuild the content snapshot from the CMS",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	m.FallbackServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_snapshot_fallback_total",
		Help: "Requests served from the bundled fallback posts",
	})
}

func initLeadMetrics(m *Metrics) {
	m.LeadsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_leads_submitted_total",
		Help: "Leads accepted by source (estimator, blog_cta)",
	}, []string{"source"})

	m.LeadsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_leads_failed_total",
		Help: "Lead submissions that failed by source and error code",
	}, []string{"source", "error_code"})

	m.LeadDispatchDur = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_lead_dispatch_duration_seconds",
		Help:    "Time to forward a lead to a downstream (relay, cms)",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"target"})
}

func initFeedMetrics(m *Metrics) {
	m.FeedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_feed_requests_total",
		Help: "RSS feed renders",
	})

	m.EstimatesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_estimates_computed_total",
		Help: "Server-side estimate computations",
	})
}

// RecordRefresh records a snapshot refresh attempt
func (p *Provider) RecordRefresh(success bool, duration time.Duration, postCount int) {
	outcome := "failure"
	if success {
		outcome = "success"
		p.Metrics.SnapshotPostCount.Set(float64(postCount))
		p.Metrics.SnapshotAge.Set(0)
	}
	p.Metrics.SnapshotRefreshes.WithLabelValues(outcome).Inc()
	p.Metrics.RefreshDuration.Observe(duration.Seconds())
}

// RecordLead records a lead submission outcome
func (p *Provider) RecordLead(source string, errorCode string) {
	if errorCode == "" {
		p.Metrics.LeadsSubmitted.WithLabelValues(source).Inc()
		return
	}
	p.Metrics.LeadsFailed.WithLabelValues(source, errorCode).Inc()
}

// RecordDispatch records time spent forwarding a lead to one downstream
func (p *Provider) RecordDispatch(target string, duration time.Duration) {
	p.Metrics.LeadDispatchDur.WithLabelValues(target).Observe(duration.Seconds())
}

// RecordFeedRequest counts one RSS feed render
func (p *Provider) RecordFeedRequest() {
	p.Metrics.FeedRequests.Inc()
}

// RecordEstimate counts one server-side estimate computation
func (p *Provider) RecordEstimate() {
	p.Metrics.EstimatesComputed.Inc()
}
