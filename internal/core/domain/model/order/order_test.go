package order_test

import (
	"testing"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func sampleItems() []order.Item {
	return []order.Item{
		order.NewItem("m-1", "Chicken Biryani", 1, 650),
		order.NewItem("m-2", "Raita", 2, 80),
	}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustOrderID(1), "cust-1", "rest-1", sampleItems(), "12 Park Lane", 0, placedAt, order.DefaultDeliveryWindow)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with derived fields", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, "ORD-000001", o.ID().String())
		assert.Equal(t, "cust-1", o.CustomerID())
		assert.Equal(t, "rest-1", o.RestaurantID())
		assert.Equal(t, "12 Park Lane", o.DeliveryAddress())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, placedAt, o.CreatedAt())
		assert.Equal(t, placedAt.Add(40*time.Minute), o.EstimatedDelivery())
		assert.InDelta(t, 810.0, o.TotalAmount(), 1e-9)
		assert.Nil(t, o.ConfirmedAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("should keep supplied total", func(t *testing.T) {
		o, err := order.NewOrder(kernel.MustOrderID(2), "c", "r", sampleItems(), "addr", 999.5, placedAt, order.DefaultDeliveryWindow)

		require.NoError(t, err)
		assert.InDelta(t, 999.5, o.TotalAmount(), 1e-9)
	})

	t.Run("should record creation event", func(t *testing.T) {
		o := newTestOrder(t)

		events := o.Events()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventTypeCreated, events[0].Type)
		assert.Equal(t, order.Pending, events[0].To)
		assert.Equal(t, "cust-1", events[0].CustomerID)
		require.NoError(t, events[0].ID.Validate())
	})

	t.Run("should report all missing fields together", func(t *testing.T) {
		o, err := order.NewOrder(kernel.MustOrderID(3), "", "", nil, "", 0, placedAt, order.DefaultDeliveryWindow)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"customerId", "restaurantId", "items", "deliveryAddress"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.OrderID{}, "c", "r", sampleItems(), "addr", 0, placedAt, order.DefaultDeliveryWindow)

		require.ErrorIs(t, err, kernel.ErrOrderIDIsNotConstructed)
	})

	t.Run("should reject negative total", func(t *testing.T) {
		_, err := order.NewOrder(kernel.MustOrderID(4), "c", "r", sampleItems(), "addr", -1, placedAt, order.DefaultDeliveryWindow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative delivery window", func(t *testing.T) {
		_, err := order.NewOrder(kernel.MustOrderID(5), "c", "r", sampleItems(), "addr", 0, placedAt, -time.Minute)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should not share items with the caller", func(t *testing.T) {
		items := sampleItems()
		o, err := order.NewOrder(kernel.MustOrderID(6), "c", "r", items, "addr", 0, placedAt, order.DefaultDeliveryWindow)
		require.NoError(t, err)

		items[0] = order.NewItem("x", "x", 100, 100)

		assert.Equal(t, "m-1", o.Items()[0].ID())
		assert.InDelta(t, 810.0, o.TotalAmount(), 1e-9)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

	literal := &order.Order{}
	require.ErrorIs(t, literal.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_AdvanceTo(t *testing.T) {
	t.Run("should walk the forward path stamping each step", func(t *testing.T) {
		o := newTestOrder(t)
		steps := []order.Status{order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered}

		for i, s := range steps {
			at := placedAt.Add(time.Duration(i+1) * time.Second)
			require.NoError(t, o.AdvanceTo(s, at))
			assert.Equal(t, s, o.Status())

			stamped, ok := o.StatusChangedAt(s)
			require.True(t, ok)
			assert.Equal(t, at, stamped)
		}

		require.NotNil(t, o.ConfirmedAt())
		require.NotNil(t, o.PreparingAt())
		require.NotNil(t, o.OutForDeliveryAt())
		require.NotNil(t, o.DeliveredAt())
		assert.Len(t, o.Events(), 1+len(steps))
	})

	t.Run("should leave the order untouched when moving backwards", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AdvanceTo(order.Preparing, placedAt.Add(5*time.Second)))

		err := o.AdvanceTo(order.Confirmed, placedAt.Add(6*time.Second))

		require.ErrorIs(t, err, errs.ErrStatusTransitionIsNotAllowed)
		assert.Equal(t, order.Preparing, o.Status())
		assert.Nil(t, o.ConfirmedAt())
	})

	t.Run("should not re-stamp on duplicate fire", func(t *testing.T) {
		o := newTestOrder(t)
		first := placedAt.Add(2 * time.Second)
		require.NoError(t, o.AdvanceTo(order.Confirmed, first))

		require.Error(t, o.AdvanceTo(order.Confirmed, first.Add(time.Second)))
		assert.Equal(t, first, *o.ConfirmedAt())
	})

	t.Run("should ignore transitions after cancellation", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(placedAt.Add(time.Second)))

		for _, s := range []order.Status{order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered} {
			require.ErrorIs(t, o.AdvanceTo(s, placedAt.Add(10*time.Second)), errs.ErrStatusTransitionIsNotAllowed)
		}
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.ConfirmedAt())
	})
}

func TestOrder_Cancel(t *testing.T) {
	for _, reached := range []order.Status{order.Pending, order.Confirmed, order.Preparing} {
		t.Run("allowed from "+reached.String(), func(t *testing.T) {
			o := newTestOrder(t)
			if reached != order.Pending {
				require.NoError(t, o.AdvanceTo(reached, placedAt.Add(time.Second)))
			}
			at := placedAt.Add(3 * time.Second)

			require.NoError(t, o.Cancel(at))

			assert.Equal(t, order.Cancelled, o.Status())
			require.NotNil(t, o.CancelledAt())
			assert.Equal(t, at, *o.CancelledAt())
		})
	}

	t.Run("rejected once out for delivery", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AdvanceTo(order.OutForDelivery, placedAt.Add(time.Second)))

		err := o.Cancel(placedAt.Add(2 * time.Second))

		require.ErrorIs(t, err, errs.ErrStatusTransitionIsNotAllowed)
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("rejected twice", func(t *testing.T) {
		o := newTestOrder(t)
		first := placedAt.Add(time.Second)
		require.NoError(t, o.Cancel(first))

		require.ErrorIs(t, o.Cancel(placedAt.Add(time.Minute)), errs.ErrStatusTransitionIsNotAllowed)
		assert.Equal(t, first, *o.CancelledAt())
	})
}

func TestOrder_Clone(t *testing.T) {
	o := newTestOrder(t)

	clone := o.Clone()
	require.NoError(t, clone.Validate())
	assert.Empty(t, clone.Events())

	require.NoError(t, clone.AdvanceTo(order.Confirmed, placedAt.Add(time.Second)))

	assert.Equal(t, order.Pending, o.Status())
	assert.Nil(t, o.ConfirmedAt())
	assert.True(t, o.IsEqual(clone))
}

func TestOrder_ClearEvents(t *testing.T) {
	o := newTestOrder(t)
	require.NotEmpty(t, o.Events())

	o.ClearEvents()

	assert.Empty(t, o.Events())
}
