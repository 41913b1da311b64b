package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderservice/internal/adapters/out/events"
	orderkafka "orderservice/internal/adapters/out/kafka"
	"orderservice/internal/adapters/out/memory"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func batchFor(seq uint64) []order.Event {
	return []order.Event{{Type: order.EventTypeCreated, OrderID: kernel.MustOrderID(seq), To: order.Pending}}
}

// gatedPublisher blocks every Publish until release is closed.
type gatedPublisher struct {
	entered chan struct{}
	release chan struct{}

	mu      sync.Mutex
	batches [][]order.Event
}

func newGatedPublisher() *gatedPublisher {
	return &gatedPublisher{entered: make(chan struct{}, 16), release: make(chan struct{})}
}

func (p *gatedPublisher) Publish(_ context.Context, evs []order.Event) error {
	p.entered <- struct{}{}
	<-p.release
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, evs)
	return nil
}

func (p *gatedPublisher) delivered() [][]order.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.batches
}

func TestOutbox_DeliversInEnqueueOrder(t *testing.T) {
	next := newGatedPublisher()
	close(next.release)
	outbox := events.NewOutbox(next, 8, discardLogger())

	for seq := uint64(1); seq <= 5; seq++ {
		require.NoError(t, outbox.Publish(t.Context(), batchFor(seq)))
	}
	require.NoError(t, outbox.Publish(t.Context(), nil))
	require.NoError(t, outbox.Close(t.Context()))

	delivered := next.delivered()
	require.Len(t, delivered, 5)
	for i, batch := range delivered {
		assert.Equal(t, uint64(i+1), batch[0].OrderID.Sequence())
	}
}

func TestOutbox_FullAndClosed(t *testing.T) {
	next := newGatedPublisher()
	outbox := events.NewOutbox(next, 1, discardLogger())

	require.NoError(t, outbox.Publish(t.Context(), batchFor(1)))
	<-next.entered

	require.NoError(t, outbox.Publish(t.Context(), batchFor(2)))
	assert.Equal(t, 1, outbox.Pending())
	require.ErrorIs(t, outbox.Publish(t.Context(), batchFor(3)), events.ErrOutboxIsFull)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, outbox.Close(ctx), context.DeadlineExceeded)
	require.ErrorIs(t, outbox.Publish(t.Context(), batchFor(4)), events.ErrOutboxIsClosed)

	close(next.release)
	require.NoError(t, outbox.Close(t.Context()))
	assert.Len(t, next.delivered(), 2)
}

func TestOutbox_KeepsDeliveringAfterFailure(t *testing.T) {
	next := new(MockEventPublisher)
	first, second := batchFor(1), batchFor(2)
	next.On("Publish", context.Background(), first).Return(errors.New("broker down")).Once()
	next.On("Publish", context.Background(), second).Return(nil).Once()

	outbox := events.NewOutbox(next, 4, discardLogger())
	require.NoError(t, outbox.Publish(t.Context(), first))
	require.NoError(t, outbox.Publish(t.Context(), second))
	require.NoError(t, outbox.Close(t.Context()))

	next.AssertExpectations(t)
}

// stalledWriter is a Kafka writer whose writes hang until released.
type stalledWriter struct {
	release chan struct{}

	mu   sync.Mutex
	keys []string
}

func (w *stalledWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	select {
	case <-w.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, msg := range msgs {
		w.keys = append(w.keys, string(msg.Key))
	}
	return nil
}

func (w *stalledWriter) Close() error {
	return nil
}

type noopScheduler struct{}

func (noopScheduler) Schedule(kernel.OrderID, order.Status, time.Duration) {}

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f()
}

func TestOutbox_CreateOrderDoesNotWaitForKafka(t *testing.T) {
	writer := &stalledWriter{release: make(chan struct{})}
	outbox := events.NewOutbox(orderkafka.NewOrderEventPublisherWithWriter(writer), 16, discardLogger())

	uowFactory := memory.NewUnitOfWorkFactory(memory.NewStore(), outbox, discardLogger())
	handler := commands.NewCreateOrderCommandHandler(
		orderUoWFactory(func() commands.OrderUoW { return uowFactory.Create() }),
		noopScheduler{},
		kernel.SystemClock{},
		commands.DefaultLifecyclePolicy(),
	)

	for range 3 {
		cmd, err := commands.NewCreateOrderCommand(
			"cust-1", "rest-1", []order.Item{order.NewItem("m-1", "Margherita", 1, 650)}, "221B Baker St", 0,
		)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() {
			_, err := handler.Handle(t.Context(), cmd)
			done <- err
		}()

		select {
		case err = <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("order creation waited on the Kafka writer")
		}
	}

	close(writer.release)
	require.NoError(t, outbox.Close(t.Context()))
	assert.Equal(t, []string{"ORD-000001", "ORD-000002", "ORD-000003"}, writer.keys)
}
