package commands

import (
	"context"
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler applies scheduled lifecycle steps.
//
// A step is applied only when the target lies strictly later on the forward path
// than the order's current status. Steps for unknown orders, for cancelled or
// delivered orders and steps that would move an order backwards or repeat its
// status are skipped without error.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewAdvanceOrderStatusCommandHandler creates the handler the status clock fires.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle reports whether the step changed the order.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = o.AdvanceTo(cmd.Target(), h.clock.Now())
	if errors.Is(err, errs.ErrStatusTransitionIsNotAllowed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
