package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Heidric/localaws.git/internal/model"
)

type RequestMetricsSource interface {
	Metrics() (model.RequestMetrics, error)
}

type LastUpdatedSource interface {
	LastUpdated() (time.Time, bool)
}

// GatewayCollector exports the gateway request counters read at scrape time.
type GatewayCollector struct {
	source      RequestMetricsSource
	logger      *zerolog.Logger
	total       *prometheus.Desc
	perEndpoint *prometheus.Desc
	errors      *prometheus.Desc
}

func NewGatewayCollector(source RequestMetricsSource, logger *zerolog.Logger) *GatewayCollector {
	return &GatewayCollector{
		source: source,
		logger: logger,
		total: prometheus.NewDesc("apigateway_requests_total",
			"Total requests received by the gateway.", nil, nil),
		perEndpoint: prometheus.NewDesc("apigateway_endpoint_requests_total",
			"Requests received by the gateway per path.", []string{"path"}, nil),
		errors: prometheus.NewDesc("apigateway_errors_total",
			"Gateway responses with status 400 or above.", nil, nil),
	}
}

func (c *GatewayCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.total
	ch <- c.perEndpoint
	ch <- c.errors
}

func (c *GatewayCollector) Collect(ch chan<- prometheus.Metric) {
	snap, err := c.source.Metrics()
	if err != nil {
		c.logger.Warn().Err(err).Msg("collect gateway metrics")
		return
	}

	ch <- prometheus.MustNewConstMetric(c.total, prometheus.CounterValue, float64(snap.TotalRequests))
	ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(snap.Errors))
	for path, n := range snap.RequestsPerEndpoint {
		ch <- prometheus.MustNewConstMetric(c.perEndpoint, prometheus.CounterValue, float64(n), path)
	}
}

// SinkCollector exports when the sink last stored a document.
type SinkCollector struct {
	source     LastUpdatedSource
	lastUpdate *prometheus.Desc
}

func NewSinkCollector(source LastUpdatedSource) *SinkCollector {
	return &SinkCollector{
		source: source,
		lastUpdate: prometheus.NewDesc("cloudwatch_last_update_timestamp_seconds",
			"Unix time of the last stored metrics document.", nil, nil),
	}
}

func (c *SinkCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lastUpdate
}

func (c *SinkCollector) Collect(ch chan<- prometheus.Metric) {
	at, ok := c.source.LastUpdated()
	if !ok {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.lastUpdate, prometheus.GaugeValue, float64(at.UnixNano())/1e9)
}

// NewRegistry registers cs alongside the Go runtime and process collectors.
func NewRegistry(cs ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(cs...)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
