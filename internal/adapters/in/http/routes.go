package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (GET /orders/customer/{customerId})
	GetCustomerOrders(ctx echo.Context, customerID string) error
	// (GET /orders/{id})
	GetOrder(ctx echo.Context, id string) error
	// (PUT /orders/{id}/cancel)
	CancelOrder(ctx echo.Context, id string) error
	// (GET /orders/{id}/track)
	TrackOrder(ctx echo.Context, id string) error
	// (GET /health)
	Health(ctx echo.Context) error
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// serverInterfaceWrapper binds path parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler ServerInterface
}

func (w *serverInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.handler.CreateOrder(ctx)
}

func (w *serverInterfaceWrapper) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := bindPathParam(ctx, "customerId")
	if err != nil {
		return err
	}
	return w.handler.GetCustomerOrders(ctx, customerID)
}

func (w *serverInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindPathParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.handler.GetOrder(ctx, id)
}

func (w *serverInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	id, err := bindPathParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.handler.CancelOrder(ctx, id)
}

func (w *serverInterfaceWrapper) TrackOrder(ctx echo.Context) error {
	id, err := bindPathParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.handler.TrackOrder(ctx, id)
}

func (w *serverInterfaceWrapper) Health(ctx echo.Context) error {
	return w.handler.Health(ctx)
}

func bindPathParam(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// RegisterOrderHandlers mounts the /orders operations on router. The router is
// expected to be rooted at /orders.
func RegisterOrderHandlers(router EchoRouter, si ServerInterface) {
	w := &serverInterfaceWrapper{handler: si}

	router.POST("", w.CreateOrder)
	router.GET("/customer/:customerId", w.GetCustomerOrders)
	router.GET("/:id", w.GetOrder)
	router.GET("/:id/track", w.TrackOrder)
	router.PUT("/:id/cancel", w.CancelOrder)
}

// RegisterHealthHandler mounts GET /health on router.
func RegisterHealthHandler(router EchoRouter, si ServerInterface) {
	w := &serverInterfaceWrapper{handler: si}
	router.GET("/health", w.Health)
}
