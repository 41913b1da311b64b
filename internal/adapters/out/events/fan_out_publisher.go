// Package events composes order event publishers.
package events

import (
	"context"
	"errors"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// FanOutPublisher hands every batch to each of its publishers. A failing
// publisher does not keep the batch from the others.
type FanOutPublisher struct {
	publishers []ports.EventPublisher
}

// NewFanOutPublisher composes publishers; nil entries are ignored.
func NewFanOutPublisher(publishers ...ports.EventPublisher) *FanOutPublisher {
	p := &FanOutPublisher{}
	for _, publisher := range publishers {
		if publisher != nil {
			p.publishers = append(p.publishers, publisher)
		}
	}
	return p
}

// Publish returns the joined errors of the publishers that failed.
func (p *FanOutPublisher) Publish(ctx context.Context, events []order.Event) error {
	var errs []error
	for _, publisher := range p.publishers {
		if err := publisher.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
