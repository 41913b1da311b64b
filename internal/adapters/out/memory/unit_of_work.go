package memory

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// ErrInvalidTransaction is returned when Commit, Rollback or a repository call is
// made without an active transaction.
var ErrInvalidTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over a Store. Events of committed
// aggregates are handed to the publisher before the store lock is released, so
// the publisher sees them in commit order. The publisher must therefore not block;
// use events.Outbox in front of anything that does I/O.
//
// Example:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store, publisher, logger)
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	repo := uow.OrderRepository()
//	id, _ := repo.NextID(ctx)
//	// ... build and Add the order
//
//	return uow.Commit(ctx)
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory creates a factory. publisher may be nil, in which case
// events are dropped.
func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Create produces a fresh unit of work. Instances are not shared between goroutines.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// UnitOfWork stages order changes and applies them to the store atomically.
//
// Begin takes the store's exclusive lock; Commit or Rollback releases it. Staged
// orders are copies, so aggregates mutated after Add or Update do not leak into
// the store, and identifiers handed out by NextID are only consumed on Commit.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger

	active  bool
	lastSeq uint64
	staged  map[kernel.OrderID]*order.Order
	added   []kernel.OrderID
	tracked []*order.Order
}

// Begin starts the transaction. Calling Begin on an active unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	uow.store.mu.Lock()
	uow.active = true
	uow.lastSeq = uow.store.lastSeq
	uow.staged = make(map[kernel.OrderID]*order.Order)
	uow.added = nil
	uow.tracked = nil
	return nil
}

// Commit applies the staged changes, publishes the events recorded on tracked
// aggregates and releases the store. Publishing failures are logged, not returned:
// the state change has already happened.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrInvalidTransaction
	}

	for key, o := range uow.staged {
		uow.store.orders[key] = o
	}
	uow.store.inserted = append(uow.store.inserted, uow.added...)
	uow.store.lastSeq = uow.lastSeq

	var events []order.Event
	for _, aggregate := range uow.tracked {
		events = append(events, aggregate.Events()...)
		aggregate.ClearEvents()
	}

	uow.publish(ctx, events)

	uow.reset()
	uow.store.mu.Unlock()
	return nil
}

// Rollback discards the staged changes and releases the store.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrInvalidTransaction
	}

	uow.reset()
	uow.store.mu.Unlock()
	return nil
}

// OrderRepository returns a repository bound to this unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) track(aggregate *order.Order) {
	if !slices.Contains(uow.tracked, aggregate) {
		uow.tracked = append(uow.tracked, aggregate)
	}
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.staged = nil
	uow.added = nil
	uow.tracked = nil
}

func (uow *UnitOfWork) publish(ctx context.Context, events []order.Event) {
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish order events",
			slog.Int("events", len(events)),
			slog.String("error", err.Error()),
		)
	}
}
