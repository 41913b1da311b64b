package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderservice/internal/adapters/out/metrics"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, m *metrics.OrderMetrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric family %s not found", name)
	return nil
}

func TestOrderMetrics_PublishCountsEvents(t *testing.T) {
	m := metrics.NewOrderMetrics("order-service")

	o, err := order.NewOrder(
		kernel.MustOrderID(1),
		"cust-1",
		"rest-1",
		[]order.Item{order.NewItem("m-1", "Margherita", 1, 650)},
		"221B Baker St",
		0,
		time.Now(),
		order.DefaultDeliveryWindow,
	)
	require.NoError(t, err)
	require.NoError(t, o.AdvanceTo(order.Confirmed, time.Now()))
	require.NoError(t, o.Cancel(time.Now()))

	require.NoError(t, m.Publish(t.Context(), o.Events()))

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.OrdersCreated), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("confirmed")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("cancelled")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("preparing")), 0)
}

func TestOrderMetrics_RecordOrderStats(t *testing.T) {
	m := metrics.NewOrderMetrics("order-service")
	m.RecordOrderStats(3, map[order.Status]int{order.Pending: 1, order.Preparing: 2, order.Delivered: 0})

	assert.InDelta(t, 3.0, testutil.ToFloat64(m.OrdersTotal), 0)
	family := findFamily(t, m, "orderservice_order_service_orders")
	assert.Len(t, family.GetMetric(), 3)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.OrdersByStatus.WithLabelValues("preparing")), 0)
}

func TestOrderMetrics_ObserveRequestAndHandler(t *testing.T) {
	m := metrics.NewOrderMetrics("order-service")
	m.ObserveRequest("/orders/:id", http.StatusNotFound, 3*time.Millisecond)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/orders/:id", "404")), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "orderservice_order_service_http_requests_total")
}
