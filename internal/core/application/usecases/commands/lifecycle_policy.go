package commands

import (
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// ScheduledTransition is an automatic status change relative to order creation.
type ScheduledTransition struct {
	Target order.Status
	Delay  time.Duration
}

// LifecyclePolicy holds the simulation timing applied to every new order.
type LifecyclePolicy struct {
	DeliveryWindow time.Duration
	Transitions    []ScheduledTransition
}

// DefaultLifecyclePolicy confirms after 2s, starts preparing after 5s and hands the
// order to a driver after 10s. Delivery itself is not simulated.
func DefaultLifecyclePolicy() LifecyclePolicy {
	return LifecyclePolicy{
		DeliveryWindow: order.DefaultDeliveryWindow,
		Transitions: []ScheduledTransition{
			{Target: order.Confirmed, Delay: 2 * time.Second},
			{Target: order.Preparing, Delay: 5 * time.Second},
			{Target: order.OutForDelivery, Delay: 10 * time.Second},
		},
	}
}

// Validate checks that delays are non-negative and strictly increase along the
// forward path.
func (p LifecyclePolicy) Validate() error {
	if p.DeliveryWindow < 0 {
		return errs.NewValueIsOutOfRangeError("deliveryWindow", p.DeliveryWindow, time.Duration(0), "unbounded")
	}

	prev := ScheduledTransition{Target: order.Pending, Delay: -1}
	for _, tr := range p.Transitions {
		if tr.Delay < 0 {
			return errs.NewValueIsOutOfRangeError(tr.Target.String()+" delay", tr.Delay, time.Duration(0), "unbounded")
		}
		if err := prev.Target.ValidateAdvance(tr.Target); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("lifecycle policy", err)
		}
		if tr.Delay <= prev.Delay {
			return errs.NewValueIsInvalidErrorWithCause(
				"lifecycle policy",
				fmt.Errorf("%s delay %s must be greater than %s delay %s", tr.Target, tr.Delay, prev.Target, prev.Delay),
			)
		}
		prev = tr
	}
	return nil
}
