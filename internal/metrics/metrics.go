// Package metrics provides Prometheus metrics for layout and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	LayoutsTotal    *prometheus.CounterVec
	LayoutDuration  *prometheus.HistogramVec
	LaneFallbacks   *prometheus.CounterVec
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry, together
// with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		LayoutsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tiendo_layouts_total",
				Help: "Layouts computed by kind, mode and whether anything was shown.",
			},
			[]string{"kind", "mode", "shown"},
		),
		LayoutDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tiendo_layout_duration_seconds",
				Help:    "Time spent laying out one plan.",
				Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
			[]string{"kind"},
		),
		LaneFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tiendo_lane_fallbacks_total",
				Help: "Events forced onto the overflow lane because every lane was occupied.",
			},
			[]string{"kind"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tiendo_http_requests_total",
				Help: "HTTP requests by route and status code.",
			},
			[]string{"route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tiendo_http_request_duration_seconds",
				Help:    "HTTP request duration by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		registry: reg,
	}

	reg.MustRegister(m.LayoutsTotal)
	reg.MustRegister(m.LayoutDuration)
	reg.MustRegister(m.LaneFallbacks)
	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLayout records one computed layout.
func (m *Metrics) ObserveLayout(kind, mode string, shown bool, elapsed time.Duration, laneFallbacks int) {
	m.LayoutsTotal.WithLabelValues(kind, mode, strconv.FormatBool(shown)).Inc()
	m.LayoutDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if laneFallbacks > 0 {
		m.LaneFallbacks.WithLabelValues(kind).Add(float64(laneFallbacks))
	}
}

// RecordRequest counts an HTTP request and its duration.
func (m *Metrics) RecordRequest(route string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
