package http

import (
	"context"
	"log/slog"
	"net/http"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server implements ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	trackOrderHandler        queries.TrackOrderQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
	getOrdersSummaryHandler  queries.GetOrdersSummaryQueryHandler

	serviceName string
	port        string
	logger      *slog.Logger
}

// ServerInfo identifies this instance in responses.
type ServerInfo struct {
	ServiceName string
	Port        string
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getOrdersSummaryHandler queries.GetOrdersSummaryQueryHandler,
	info ServerInfo,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHandler:          getOrderHandler,
		trackOrderHandler:        trackOrderHandler,
		getCustomerOrdersHandler: getCustomerOrdersHandler,
		getOrdersSummaryHandler:  getOrdersSummaryHandler,
		serviceName:              info.ServiceName,
		port:                     info.Port,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, http.StatusBadRequest, msgInvalidRequest)
	}

	cmd, err := commands.NewCreateOrderCommand(
		body.CustomerID,
		body.RestaurantID,
		toItems(body.Items),
		body.DeliveryAddress,
		body.TotalAmount,
	)
	if err != nil {
		return s.failWith(ctx, err)
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "order created",
		slog.String("orderId", o.ID().String()),
		slog.String("customerId", o.CustomerID()),
	)
	return s.ok(ctx, http.StatusCreated, fromOrder(o))
}

// GetOrder handles GET /orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.failWith(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failWith(ctx, err)
	}

	return s.ok(ctx, http.StatusOK, fromOrder(o))
}

// TrackOrder handles GET /orders/{id}/track.
func (s *Server) TrackOrder(ctx echo.Context, id string) error {
	query, err := queries.NewTrackOrderQuery(id)
	if err != nil {
		return s.failWith(ctx, err)
	}

	view, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failWith(ctx, err)
	}

	return s.ok(ctx, http.StatusOK, fromTrackingView(view))
}

// GetCustomerOrders handles GET /orders/customer/{customerId}.
func (s *Server) GetCustomerOrders(ctx echo.Context, customerID string) error {
	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return s.failWith(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failWith(ctx, err)
	}

	return s.ok(ctx, http.StatusOK, fromOrders(orders))
}

// CancelOrder handles PUT /orders/{id}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, id string) error {
	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.failWith(ctx, err)
	}

	o, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "order cancelled", slog.String("orderId", o.ID().String()))
	return s.ok(ctx, http.StatusOK, fromOrder(o))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	summary, err := s.getOrdersSummaryHandler.Handle(ctx.Request().Context(), queries.NewGetOrdersSummaryQuery())
	if err != nil {
		return s.failWith(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Health{
		Status:      "healthy",
		Service:     s.serviceName,
		Port:        s.port,
		TotalOrders: summary.Total,
	})
}

func (s *Server) ok(ctx echo.Context, code int, data any) error {
	return ctx.JSON(code, Envelope{
		Success: true,
		Data:    data,
		Server:  s.serviceName + ":" + s.port,
	})
}

func (s *Server) fail(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Envelope{Success: false, Error: message})
}

func (s *Server) failWith(ctx echo.Context, err error) error {
	code, message := statusOf(err)
	if code >= http.StatusInternalServerError {
		s.logError(ctx.Request().Context(), ctx.Path(), err)
	}
	return s.fail(ctx, code, message)
}

func (s *Server) logError(ctx context.Context, path string, err error) {
	s.logger.ErrorContext(ctx, "request failed", slog.String("path", path), slog.String("error", err.Error()))
}
