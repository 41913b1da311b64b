// Package metrics exposes order and HTTP metrics in the Prometheus format.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orderservice/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderservice"

// OrderMetrics holds every collector of the service on a private registry.
type OrderMetrics struct {
	OrdersCreated     prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	OrdersByStatus    *prometheus.GaugeVec
	OrdersTotal       prometheus.Gauge
	Requests          *prometheus.CounterVec
	LatencyMS         *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewOrderMetrics creates and registers the collectors. service becomes the
// subsystem of every metric name.
func NewOrderMetrics(service string) *OrderMetrics {
	subsystem := strings.ReplaceAll(service, "-", "_")

	m := &OrderMetrics{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_created_total",
			Help:      "Total number of orders placed.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_status_transitions_total",
			Help:      "Total number of applied order status changes by target status.",
		}, []string{"status"}),
		OrdersByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders",
			Help:      "Number of stored orders by current status.",
		}, []string{"status"}),
		OrdersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_stored",
			Help:      "Number of stored orders.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"handler"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.OrdersCreated,
		m.StatusTransitions,
		m.OrdersByStatus,
		m.OrdersTotal,
		m.Requests,
		m.LatencyMS,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Publish counts placed orders and applied status changes.
func (m *OrderMetrics) Publish(_ context.Context, events []order.Event) error {
	for _, ev := range events {
		switch ev.Type {
		case order.EventTypeCreated:
			m.OrdersCreated.Inc()
		case order.EventTypeStatusChanged:
			m.StatusTransitions.WithLabelValues(ev.To.String()).Inc()
		}
	}
	return nil
}

// RecordOrderStats replaces the order gauges with fresh counts.
func (m *OrderMetrics) RecordOrderStats(total int, byStatus map[order.Status]int) {
	m.OrdersTotal.Set(float64(total))
	for status, count := range byStatus {
		m.OrdersByStatus.WithLabelValues(status.String()).Set(float64(count))
	}
}

// ObserveRequest records one served HTTP request.
func (m *OrderMetrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))
}

// Registry exposes the private registry, mainly for tests.
func (m *OrderMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *OrderMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
