package commands_test

import (
	"context"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextID(ctx context.Context) (kernel.OrderID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.OrderID), args.Error(1)
}
func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTransitionScheduler struct{ mock.Mock }

func (m *MockTransitionScheduler) Schedule(orderID kernel.OrderID, target order.Status, delay time.Duration) {
	m.Called(orderID, target, delay)
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return fixedNow })
}

func newTestOrder(seq uint64) *order.Order {
	o, err := order.NewOrder(
		kernel.MustOrderID(seq),
		"cust-1",
		"rest-1",
		[]order.Item{order.NewItem("m-1", "Margherita", 2, 650)},
		"221B Baker St",
		0,
		fixedNow,
		order.DefaultDeliveryWindow,
	)
	if err != nil {
		panic(err)
	}
	o.ClearEvents()
	return o
}
