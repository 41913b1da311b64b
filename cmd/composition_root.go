package cmd

import (
	"context"
	"errors"
	"log/slog"

	orderhttp "orderservice/internal/adapters/in/http"
	"orderservice/internal/adapters/out/events"
	"orderservice/internal/adapters/out/kafka"
	"orderservice/internal/adapters/out/memory"
	"orderservice/internal/adapters/out/metrics"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/services"
	"orderservice/internal/core/ports"
	"orderservice/internal/jobs"

	"github.com/labstack/echo/v4"
)

// outboxCapacity is the number of committed changes whose events may await delivery.
const outboxCapacity = 4096

// CompositionRoot owns the process-wide dependencies and builds handlers on demand.
type CompositionRoot struct {
	config Config
	logger *slog.Logger
	clock  kernel.Clock

	store          *memory.Store
	metrics        *metrics.OrderMetrics
	kafkaPublisher *kafka.OrderEventPublisher
	outbox         *events.Outbox
	uowFactory     *memory.UnitOfWorkFactory

	statusClockJob *jobs.StatusClockJob
	orderStatsJob  *jobs.OrderStatsJob
}

// NewCompositionRoot wires the in-memory store, event publishers and background jobs.
// The Kafka publisher is only created when KafkaHost is configured. Committed events
// go through an outbox so that requests never wait on the publishers.
func NewCompositionRoot(config Config, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		config:  config,
		logger:  logger,
		clock:   kernel.SystemClock{},
		store:   memory.NewStore(),
		metrics: metrics.NewOrderMetrics(config.ServiceName),
	}

	publishers := []ports.EventPublisher{c.metrics}
	if brokers := kafka.ParseBrokers(config.KafkaHost); len(brokers) > 0 {
		c.kafkaPublisher = kafka.NewOrderEventPublisher(brokers, config.KafkaOrderChangedTopic)
		publishers = append(publishers, c.kafkaPublisher)
		logger.Info("publishing order events to kafka",
			slog.Any("brokers", brokers),
			slog.String("topic", config.KafkaOrderChangedTopic),
		)
	}
	c.outbox = events.NewOutbox(events.NewFanOutPublisher(publishers...), outboxCapacity, logger)
	c.uowFactory = memory.NewUnitOfWorkFactory(c.store, c.outbox, logger)

	advance := c.CreateAdvanceOrderStatusCommandHandler()
	c.statusClockJob = jobs.NewStatusClockJob(&advance, logger)
	summary := c.CreateGetOrdersSummaryQueryHandler()
	c.orderStatsJob = jobs.NewOrderStatsJob(summary, c.metrics, config.StatsSchedule, logger)

	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// CreateCreateOrderCommandHandler builds the create handler; new orders are scheduled on the status clock.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.statusClockJob, c.clock, c.config.LifecyclePolicy())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.store, services.NewTrackingViewBuilder())
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetOrdersSummaryQueryHandler() queries.GetOrdersSummaryQueryHandler {
	return queries.NewGetOrdersSummaryQueryHandler(c.store)
}

// CreateServer builds the HTTP handlers over the shared store.
func (c *CompositionRoot) CreateServer() *orderhttp.Server {
	return orderhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.CreateGetOrdersSummaryQueryHandler(),
		orderhttp.ServerInfo{ServiceName: c.config.ServiceName, Port: c.config.HTTPPort},
		c.logger,
	)
}

// CreateRouter builds the echo instance serving the order API, health, metrics
// and API docs.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	doc, err := orderhttp.LoadOpenAPI()
	if err != nil {
		return nil, err
	}

	return orderhttp.NewRouter(c.CreateServer(), orderhttp.RouterConfig{
		OpenAPI:         doc,
		MetricsHandler:  c.metrics.Handler(),
		RequestObserver: c.metrics,
		Logger:          c.logger,
	})
}

// CreateJobManager returns the status clock and the stats job, not yet started.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.statusClockJob, c.orderStatsJob)
}

// Close delivers the events still in the outbox, bounded by ctx, and releases the
// outbound connections. Call it after the HTTP server and the jobs are stopped.
func (c *CompositionRoot) Close(ctx context.Context) error {
	err := c.outbox.Close(ctx)
	if c.kafkaPublisher != nil {
		err = errors.Join(err, c.kafkaPublisher.Close())
	}
	return err
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
