package commands

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels orders on customer request.
//
// Possible outcomes:
//   - the cancelled order
//   - errs.ErrObjectNotFound when no order has the id
//   - errs.ErrStatusTransitionIsNotAllowed when the order is already out for
//     delivery, delivered or cancelled
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle loads, cancels and stores the order in a single unit of work, so a
// concurrently firing scheduled transition sees either the original or the
// cancelled order and never overwrites the cancellation.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id, err := parseOrderID(cmd.OrderID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = o.Cancel(h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
