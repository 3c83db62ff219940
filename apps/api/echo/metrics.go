package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics owns its registry so several servers (tests) can live in one process.
type metrics struct {
	registry        *prometheus.Registry
	requestLatency  *prometheus.HistogramVec
	catalogViews    *prometheus.CounterVec
	catalogToggles  *prometheus.CounterVec
	catalogSessions prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campus_http_request_duration_seconds",
			Help:    "Latency of HTTP requests by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		catalogViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_catalog_views_total",
			Help: "Number of rendered catalog views",
		}, []string{"catalog"}),
		catalogToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_catalog_toggles_total",
			Help: "Number of expand/collapse toggles",
		}, []string{"catalog"}),
		catalogSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campus_catalog_sessions_total",
			Help: "Number of opened catalog sessions",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestLatency,
		m.catalogViews,
		m.catalogToggles,
		m.catalogSessions,
	)
	return m
}

func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		code := ctx.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		route := ctx.Path()
		if route == "" {
			route = "unmatched"
		}
		m.requestLatency.
			WithLabelValues(ctx.Request().Method, route, strconv.Itoa(code)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *metrics) handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
