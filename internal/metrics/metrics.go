package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hackhub/internal/store"
)

var (
	recordsDesc = prometheus.NewDesc(
		"hackhub_records",
		"Stored record count by collection and soft-delete state",
		[]string{"collection", "state"},
		nil,
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackhub_upstream_requests_total",
			Help: "Total upstream API calls by outcome",
		},
		[]string{"api", "outcome"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hackhub_upstream_request_duration_seconds",
			Help:    "Upstream API call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api"},
	)
)

// Upstream call outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeClientError  = "client_error"
	OutcomeServerError  = "server_error"
	OutcomeTransport    = "transport_error"
	OutcomeBodyTooLarge = "body_too_large"
)

// RecordCollector is a custom Prometheus collector that reads record counts
// from storage on each scrape.
type RecordCollector struct {
	counter store.RecordCounter
	timeout time.Duration
}

// NewRecordCollector returns a collector backed by counter.
func NewRecordCollector(counter store.RecordCounter) *RecordCollector {
	return &RecordCollector{counter: counter, timeout: 5 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *RecordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- recordsDesc
}

// Collect queries storage for record counts and emits them as gauges.
func (c *RecordCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.counter.CountRecords(ctx)
	if err != nil {
		slog.Error("failed to collect record metrics", "error", err)
		return
	}
	for _, rc := range counts {
		ch <- prometheus.MustNewConstMetric(
			recordsDesc,
			prometheus.GaugeValue,
			float64(rc.Count),
			rc.Collection,
			rc.State,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(counter store.RecordCounter) {
	initOnce.Do(func() {
		prometheus.MustRegister(upstreamRequests, upstreamDuration)
		if counter != nil {
			prometheus.MustRegister(NewRecordCollector(counter))
		}
	})
}

// ObserveUpstream records the outcome and latency of one upstream call.
func ObserveUpstream(api, outcome string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(api, outcome).Inc()
	upstreamDuration.WithLabelValues(api).Observe(elapsed.Seconds())
}

// OutcomeForStatus maps an HTTP status code to an outcome label.
func OutcomeForStatus(code int) string {
	switch {
	case code >= 500:
		return OutcomeServerError
	case code >= 400:
		return OutcomeClientError
	default:
		return OutcomeSuccess
	}
}
