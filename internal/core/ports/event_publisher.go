package ports

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

// EventPublisher delivers committed order events to interested parties
// (message broker, metrics). Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, events []order.Event) error
}
