package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orderservice/cmd"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "order-service",
		Short:         "Food delivery order lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		envFile   string
		port      string
		logLevel  string
		kafkaHost string
	)

	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the order status clock",
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := cmd.LoadConfig(envFile)
			if err != nil {
				return err
			}

			flags := c.Flags()
			if flags.Changed("port") {
				config.HTTPPort = port
			}
			if flags.Changed("log-level") {
				config.LogLevel = logLevel
			}
			if flags.Changed("kafka-host") {
				config.KafkaHost = kafkaHost
			}
			if err = config.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, config)
		},
	}

	flags := command.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")
	flags.StringVar(&port, "port", "", "HTTP listen port (HTTP_PORT)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")
	flags.StringVar(&kafkaHost, "kafka-host", "", "comma separated Kafka brokers, empty disables publishing (KAFKA_HOST)")
	return command
}

func serve(ctx context.Context, config cmd.Config) error {
	level, err := config.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With("service", config.ServiceName)

	app := cmd.NewCompositionRoot(config, logger)
	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("order service listening", slog.String("address", config.Address()))
		if err := e.Start(config.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)

		jobManager.StopAll()
		return errors.Join(err, app.Close(shutdownCtx))
	})

	return g.Wait()
}
