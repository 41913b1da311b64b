package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/joho/godotenv"
)

// Config holds the settings of the serve command.
type Config struct {
	HTTPPort               string
	ServiceName            string
	LogLevel               string
	ConfirmAfter           time.Duration
	PrepareAfter           time.Duration
	DispatchAfter          time.Duration
	DeliverAfter           time.Duration
	DeliveryWindow         time.Duration
	StatsSchedule          string
	KafkaHost              string
	KafkaOrderChangedTopic string
	ShutdownTimeout        time.Duration
}

// DefaultConfig returns the settings used when neither the environment nor flags
// say otherwise.
func DefaultConfig() Config {
	return Config{
		HTTPPort:               "6001",
		ServiceName:            "order-service",
		LogLevel:               "info",
		ConfirmAfter:           2 * time.Second,
		PrepareAfter:           5 * time.Second,
		DispatchAfter:          10 * time.Second,
		DeliveryWindow:         order.DefaultDeliveryWindow,
		StatsSchedule:          "@every 15s",
		KafkaOrderChangedTopic: "order.changed",
		ShutdownTimeout:        10 * time.Second,
	}
}

// LoadConfig reads envFile (if it exists) and the process environment on top of
// DefaultConfig. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	err := errors.Join(
		stringVariable("HTTP_PORT", &cfg.HTTPPort),
		stringVariable("SERVICE_NAME", &cfg.ServiceName),
		stringVariable("LOG_LEVEL", &cfg.LogLevel),
		durationVariable("ORDER_CONFIRM_AFTER", &cfg.ConfirmAfter),
		durationVariable("ORDER_PREPARE_AFTER", &cfg.PrepareAfter),
		durationVariable("ORDER_DISPATCH_AFTER", &cfg.DispatchAfter),
		durationVariable("ORDER_DELIVER_AFTER", &cfg.DeliverAfter),
		durationVariable("ORDER_DELIVERY_WINDOW", &cfg.DeliveryWindow),
		stringVariable("ORDER_STATS_SCHEDULE", &cfg.StatsSchedule),
		stringVariable("KAFKA_HOST", &cfg.KafkaHost),
		stringVariable("KAFKA_ORDER_CHANGED_TOPIC", &cfg.KafkaOrderChangedTopic),
		durationVariable("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be caught by parsing alone.
func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.ServiceName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("SERVICE_NAME"))
	}
	if c.StatsSchedule == "" {
		problems = append(problems, errs.NewValueIsRequiredError("ORDER_STATS_SCHEDULE"))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("SHUTDOWN_TIMEOUT", c.ShutdownTimeout, "1ns", "unbounded"))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}
	problems = append(problems, c.LifecyclePolicy().Validate())
	return errors.Join(problems...)
}

// LifecyclePolicy turns the delay settings into the schedule applied to new orders.
// Delivery is only scheduled when DeliverAfter is positive.
func (c Config) LifecyclePolicy() commands.LifecyclePolicy {
	policy := commands.LifecyclePolicy{
		DeliveryWindow: c.DeliveryWindow,
		Transitions: []commands.ScheduledTransition{
			{Target: order.Confirmed, Delay: c.ConfirmAfter},
			{Target: order.Preparing, Delay: c.PrepareAfter},
			{Target: order.OutForDelivery, Delay: c.DispatchAfter},
		},
	}
	if c.DeliverAfter > 0 {
		policy.Transitions = append(policy.Transitions, commands.ScheduledTransition{
			Target: order.Delivered,
			Delay:  c.DeliverAfter,
		})
	}
	return policy
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}

// Address is the listen address of the HTTP server.
func (c Config) Address() string {
	return fmt.Sprintf("0.0.0.0:%s", c.HTTPPort)
}

// stringVariable copies a non-empty variable into target. Values made only of
// whitespace are rejected rather than silently replacing the default.
func stringVariable(key string, target *string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsInvalidErrorWithCause(key, errors.New("value is blank"))
	}
	*target = v
	return nil
}

func durationVariable(key string, target *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	*target = d
	return nil
}
