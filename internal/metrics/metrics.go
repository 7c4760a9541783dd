package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"rumorwatch/internal/models"
)

const namespace = "rumorwatch"

// Metrics holds the Prometheus counters and histograms updated on the
// request path.
type Metrics struct {
	ReportsSubmitted *prometheus.CounterVec // labels: risk_level
	RiskScore        prometheus.Histogram
	BatchItems       *prometheus.CounterVec // labels: outcome={added,rejected}
	PublishErrors    prometheus.Counter
	ReportsArchived  prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_submitted_total",
			Help:      "Reports accepted, by risk level at submission.",
		}, []string{"risk_level"}),
		RiskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_risk_score",
			Help:      "Risk score assigned to submitted reports.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		BatchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keyword_batch_items_total",
			Help:      "Keyword batch items by outcome.",
		}, []string{"outcome"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_publish_errors_total",
			Help:      "Scored-report events that could not be published.",
		}),
		ReportsArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_archived_total",
			Help:      "Reports moved to ARCHIVED by the archiver job.",
		}),
	}
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.ReportsSubmitted,
		m.RiskScore,
		m.BatchItems,
		m.PublishErrors,
		m.ReportsArchived,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveReport records a submitted report. Safe on a nil receiver.
func (m *Metrics) ObserveReport(level models.RiskLevel, score int) {
	if m == nil {
		return
	}
	m.ReportsSubmitted.WithLabelValues(string(level)).Inc()
	m.RiskScore.Observe(float64(score))
}

// BatchItem records the outcome of one keyword batch item.
func (m *Metrics) BatchItem(outcome string) {
	if m == nil {
		return
	}
	m.BatchItems.WithLabelValues(outcome).Inc()
}

// PublishFailed counts a failed event publish.
func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.PublishErrors.Inc()
}

// Archived counts reports moved to ARCHIVED.
func (m *Metrics) Archived(n int) {
	if m == nil {
		return
	}
	m.ReportsArchived.Add(float64(n))
}

var reportsDesc = prometheus.NewDesc(
	namespace+"_reports",
	"Stored reports by risk level and status",
	[]string{"risk_level", "status"},
	nil,
)

// ReportCounter supplies per-level, per-status report counts.
type ReportCounter interface {
	ReportCounts(ctx context.Context) (map[models.RiskLevel]map[models.Status]int, error)
}

// ReportCollector is a custom Prometheus collector that reads report counts
// from the store on each scrape.
type ReportCollector struct {
	source  ReportCounter
	timeout time.Duration
	logger  *slog.Logger
}

// NewReportCollector creates a collector over source.
func NewReportCollector(source ReportCounter, logger *slog.Logger) *ReportCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportCollector{source: source, timeout: 5 * time.Second, logger: logger}
}

// Describe sends the metric descriptor to the channel.
func (c *ReportCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- reportsDesc
}

// Collect queries the store and emits one gauge for every (level, status)
// pair, zero when no report has that combination.
func (c *ReportCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.source.ReportCounts(ctx)
	if err != nil {
		c.logger.Error("failed to collect report metrics", "error", err)
		return
	}
	for _, level := range models.RiskLevels {
		for _, status := range models.Statuses {
			ch <- prometheus.MustNewConstMetric(
				reportsDesc,
				prometheus.GaugeValue,
				float64(counts[level][status]),
				string(level),
				string(status),
			)
		}
	}
}
