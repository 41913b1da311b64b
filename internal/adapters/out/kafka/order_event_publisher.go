// Package kafka publishes order domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventMessage is the JSON value of every message on the order topic.
type OrderEventMessage struct {
	EventID    string       `json:"eventId"`
	Type       string       `json:"type"`
	OrderID    string       `json:"orderId"`
	CustomerID string       `json:"customerId"`
	From       order.Status `json:"from,omitempty"`
	To         order.Status `json:"to"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// ParseOrderEventMessage decodes a message value written by OrderEventPublisher
// back into the domain event, for consumers of the order topic.
func ParseOrderEventMessage(value []byte) (order.Event, error) {
	var msg OrderEventMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return order.Event{}, fmt.Errorf("decode order event: %w", err)
	}

	eventID, err := kernel.EventIDFromString(msg.EventID)
	if err != nil {
		return order.Event{}, fmt.Errorf("decode order event: %w", err)
	}
	orderID, err := kernel.OrderIDFromString(msg.OrderID)
	if err != nil {
		return order.Event{}, fmt.Errorf("decode order event %s: %w", msg.EventID, err)
	}
	if err = msg.To.Validate(); err != nil {
		return order.Event{}, fmt.Errorf("decode order event %s: %w", msg.EventID, err)
	}

	return order.Event{
		ID:         eventID,
		Type:       order.EventType(msg.Type),
		OrderID:    orderID,
		CustomerID: msg.CustomerID,
		From:       msg.From,
		To:         msg.To,
		OccurredAt: msg.OccurredAt,
	}, nil
}

// OrderEventPublisher writes order events keyed by order id, so all events of one
// order land on the same partition. Writes are synchronous; callers on a request
// path put it behind events.Outbox, which also keeps batches in commit order.
type OrderEventPublisher struct {
	writer MessageWriter
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// writeBatchTimeout bounds how long a partial batch waits before it is flushed
// (kafka-go defaults to one second).
const writeBatchTimeout = 10 * time.Millisecond

// NewOrderEventPublisher creates a publisher writing to topic on brokers.
func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return NewOrderEventPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           writeBatchTimeout,
		AllowAutoTopicCreation: true,
	})
}

// NewOrderEventPublisherWithWriter creates a publisher over an existing writer.
func NewOrderEventPublisherWithWriter(writer MessageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

// Publish writes events in a single batch.
func (p *OrderEventPublisher) Publish(ctx context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		msg, err := toMessage(ev)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write order events: %w", err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(ev order.Event) (kafka.Message, error) {
	payload := OrderEventMessage{
		EventID:    ev.ID.String(),
		Type:       string(ev.Type),
		OrderID:    ev.OrderID.String(),
		CustomerID: ev.CustomerID,
		From:       ev.From,
		To:         ev.To,
		OccurredAt: ev.OccurredAt.UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode order event %s: %w", ev.ID, err)
	}

	return kafka.Message{
		Key:   []byte(payload.OrderID),
		Value: data,
		Time:  payload.OccurredAt,
	}, nil
}
