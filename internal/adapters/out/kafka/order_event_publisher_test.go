package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	orderkafka "orderservice/internal/adapters/out/kafka"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageWriter struct{ mock.Mock }

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockMessageWriter) Close() error {
	return m.Called().Error(0)
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.MustOrderID(12),
		"cust-1",
		"rest-1",
		[]order.Item{order.NewItem("m-1", "Margherita", 1, 650)},
		"221B Baker St",
		0,
		time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		order.DefaultDeliveryWindow,
	)
	require.NoError(t, err)
	return o
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, orderkafka.ParseBrokers(" a:9092, ,b:9092,"))
	assert.Empty(t, orderkafka.ParseBrokers(""))
}

func TestOrderEventPublisher_Publish(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t)
	require.NoError(t, o.AdvanceTo(order.Confirmed, o.CreatedAt().Add(2*time.Second)))
	events := o.Events()

	writer := new(MockMessageWriter)
	var written []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).([]kafka.Message)
	}).Return(nil).Once()

	p := orderkafka.NewOrderEventPublisherWithWriter(writer)
	require.NoError(t, p.Publish(ctx, events))
	require.Len(t, written, 2)

	var created, changed orderkafka.OrderEventMessage
	require.NoError(t, json.Unmarshal(written[0].Value, &created))
	require.NoError(t, json.Unmarshal(written[1].Value, &changed))

	assert.Equal(t, "ORD-000012", string(written[0].Key))
	assert.Equal(t, "order.created", created.Type)
	assert.Equal(t, order.Unknown, created.From)
	assert.NotContains(t, string(written[0].Value), `"from"`)
	assert.Equal(t, order.Pending, created.To)
	assert.Equal(t, "cust-1", created.CustomerID)
	assert.Equal(t, events[0].ID.String(), created.EventID)

	assert.Equal(t, "order.status_changed", changed.Type)
	assert.Contains(t, string(written[1].Value), `"from":"pending","to":"confirmed"`)
	assert.Equal(t, order.Pending, changed.From)
	assert.Equal(t, order.Confirmed, changed.To)
	assert.Equal(t, o.CreatedAt().Add(2*time.Second), changed.OccurredAt)
	writer.AssertExpectations(t)
}

func TestOrderEventPublisher_PublishNothing(t *testing.T) {
	writer := new(MockMessageWriter)
	p := orderkafka.NewOrderEventPublisherWithWriter(writer)
	require.NoError(t, p.Publish(t.Context(), nil))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestOrderEventPublisher_WriteError(t *testing.T) {
	writer := new(MockMessageWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available"))
	writer.On("Close").Return(nil)

	p := orderkafka.NewOrderEventPublisherWithWriter(writer)
	err := p.Publish(t.Context(), placedOrder(t).Events())
	require.ErrorContains(t, err, "leader not available")
	require.NoError(t, p.Close())
}

func TestParseOrderEventMessage(t *testing.T) {
	o := placedOrder(t)
	require.NoError(t, o.Cancel(o.CreatedAt().Add(time.Minute)))
	events := o.Events()

	writer := new(MockMessageWriter)
	var written []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).([]kafka.Message)
	}).Return(nil).Once()
	require.NoError(t, orderkafka.NewOrderEventPublisherWithWriter(writer).Publish(t.Context(), events))
	require.Len(t, written, len(events))

	for i, msg := range written {
		decoded, err := orderkafka.ParseOrderEventMessage(msg.Value)
		require.NoError(t, err)
		assert.Equal(t, events[i], decoded)
	}
}

func TestParseOrderEventMessage_Rejects(t *testing.T) {
	valid := `"eventId":"7f8b1f0e-4b8a-4c55-9a55-1f2d3c4b5a69","type":"order.created","orderId":"ORD-000001","customerId":"c","occurredAt":"2024-03-01T12:00:00Z"`

	tests := map[string]string{
		"not json":       `{`,
		"unknown status": `{` + valid + `,"to":"lost"}`,
		"missing status": `{` + valid + `}`,
		"bad order id":   `{"eventId":"7f8b1f0e-4b8a-4c55-9a55-1f2d3c4b5a69","orderId":"ORD-1","to":"pending"}`,
		"bad event id":   `{"eventId":"nope","orderId":"ORD-000001","to":"pending"}`,
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := orderkafka.ParseOrderEventMessage([]byte(value))
			require.Error(t, err)
		})
	}
}
