package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RequestObserver records served requests, e.g. as Prometheus metrics.
type RequestObserver interface {
	ObserveRequest(handler string, status int, elapsed time.Duration)
}

// RouterConfig holds the collaborators of the echo instance besides the Server.
type RouterConfig struct {
	OpenAPI         *openapi3.T
	MetricsHandler  http.Handler
	RequestObserver RequestObserver
	Logger          *slog.Logger
}

// NewRouter builds the echo instance serving the order API, health, metrics and
// API documentation.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	validator, err := OpenAPIValidator(cfg.OpenAPI)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(cfg.OpenAPI); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = envelopeErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(cfg.Logger))
	if cfg.RequestObserver != nil {
		e.Use(observeRequests(cfg.RequestObserver))
	}

	orders := e.Group("/orders", validator)
	RegisterOrderHandlers(orders, server)
	RegisterHealthHandler(e, server)

	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	e.GET("/openapi.json", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, cfg.OpenAPI)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("requestId", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}

func observeRequests(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}

			path := ctx.Path()
			if path == "" {
				path = "unmatched"
			}
			observer.ObserveRequest(path, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}

// envelopeErrorHandler renders errors that escaped the handlers, such as unknown
// routes or failed request validation, in the same envelope as use case errors.
func envelopeErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code, message := http.StatusInternalServerError, msgInternalFailure
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		} else {
			logger.Error("unhandled error", slog.String("path", ctx.Path()), slog.String("error", err.Error()))
		}

		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(code)
			return
		}
		_ = ctx.JSON(code, Envelope{Success: false, Error: message})
	}
}
