package dev

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects development proxy metrics on a private registry so the
// endpoint only exposes djboot series, not the default Go collectors' noise.
type Metrics struct {
	registry *prometheus.Registry

	proxiedRequests *prometheus.CounterVec
	proxyDuration   *prometheus.HistogramVec
	reloads         prometheus.Counter
	reloadClients   prometheus.GaugeFunc
}

// NewMetrics creates the proxy metric set, registered against its own
// registry. clientCount feeds the connected-clients gauge.
func NewMetrics(clientCount func() int) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		proxiedRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "djboot",
				Subsystem: "proxy",
				Name:      "requests_total",
				Help:      "Requests forwarded to the Django server.",
			},
			[]string{"method", "status"},
		),
		proxyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "djboot",
				Subsystem: "proxy",
				Name:      "request_duration_seconds",
				Help:      "Latency of proxied requests.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method"},
		),
		reloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "djboot",
				Subsystem: "dev",
				Name:      "reloads_total",
				Help:      "Browser reloads triggered by file changes.",
			},
		),
		reloadClients: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "djboot",
				Subsystem: "dev",
				Name:      "reload_clients",
				Help:      "Currently connected hot reload clients.",
			},
			func() float64 { return float64(clientCount()) },
		),
	}

	reg.MustRegister(m.proxiedRequests, m.proxyDuration, m.reloads, m.reloadClients)
	return m
}

// Handler returns the HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveProxied records one forwarded request.
func (m *Metrics) ObserveProxied(method string, status int, elapsed time.Duration) {
	m.proxiedRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.proxyDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveReload records one triggered browser reload.
func (m *Metrics) ObserveReload() {
	m.reloads.Inc()
}
