package commands

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places new orders and starts their simulated lifecycle.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, statusClock, kernel.SystemClock{}, DefaultLifecyclePolicy())
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// o is Pending; confirmation follows automatically
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  TransitionScheduler
	clock      kernel.Clock
	policy     LifecyclePolicy
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// The policy is expected to be validated by the caller.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler TransitionScheduler,
	clock kernel.Clock,
	policy LifecyclePolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
		policy:     policy,
	}
}

// Handle allocates the next order id, stores the order in Pending status and, once
// the order is committed, schedules its automatic transitions.
// On any failure nothing is stored and the id is not consumed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	id, err := orderRepo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		id,
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.Items(),
		cmd.DeliveryAddress(),
		cmd.TotalAmount(),
		h.clock.Now(),
		h.policy.DeliveryWindow,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, tr := range h.policy.Transitions {
		h.scheduler.Schedule(o.ID(), tr.Target, tr.Delay)
	}

	return o, nil
}
