package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

var (
	ErrOutboxIsFull   = errors.New("event outbox is full")
	ErrOutboxIsClosed = errors.New("event outbox is closed")
)

// Outbox decouples committing a change from delivering its events. Publish only
// enqueues and never waits on the downstream publisher; a single worker drains
// the queue, so batches reach next in the order they were enqueued.
//
// Example:
//
//	outbox := events.NewOutbox(events.NewFanOutPublisher(metrics, kafka), 1024, logger)
//	defer func() { _ = outbox.Close(ctx) }()
type Outbox struct {
	next   ports.EventPublisher
	queue  chan []order.Event
	done   chan struct{}
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewOutbox starts the worker delivering to next. capacity bounds the number of
// pending batches; Publish fails with ErrOutboxIsFull beyond it.
func NewOutbox(next ports.EventPublisher, capacity int, logger *slog.Logger) *Outbox {
	o := &Outbox{
		next:   next,
		queue:  make(chan []order.Event, max(capacity, 1)),
		done:   make(chan struct{}),
		logger: logger.With("component", "event_outbox"),
	}
	go o.run()
	return o
}

// Publish enqueues events for delivery. The caller's context is not used for the
// delivery itself, which outlives the request that produced the events.
func (o *Outbox) Publish(_ context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return ErrOutboxIsClosed
	}

	select {
	case o.queue <- slices.Clone(events):
		return nil
	default:
		return ErrOutboxIsFull
	}
}

// Pending returns the number of batches waiting for delivery.
func (o *Outbox) Pending() int {
	return len(o.queue)
}

// Close stops accepting events and waits until the queued ones are delivered or
// ctx is done.
func (o *Outbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
	o.mu.Unlock()

	select {
	case <-o.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Outbox) run() {
	defer close(o.done)

	for batch := range o.queue {
		if err := o.next.Publish(context.Background(), batch); err != nil {
			o.logger.Error("failed to deliver order events",
				slog.String("orderId", batch[0].OrderID.String()),
				slog.Int("events", len(batch)),
				slog.String("error", err.Error()),
			)
		}
	}
}
