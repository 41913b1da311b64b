package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// OrderStatusAdvancer applies a scheduled status change.
type OrderStatusAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (bool, error)
}

// StatusClockJob drives the simulated order lifecycle. Every scheduled transition
// becomes a one-shot cron entry that advances the order and then removes itself.
// Entries are independent: a slow or panicking transition does not delay others.
type StatusClockJob struct {
	advancer OrderStatusAdvancer
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusClockJob creates the status clock. Panics inside a transition are
// recovered by the cron chain and logged through logger.
func NewStatusClockJob(advancer OrderStatusAdvancer, logger *slog.Logger) *StatusClockJob {
	logger = logger.With("component", "status_clock_job")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	return &StatusClockJob{
		advancer: advancer,
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger))),
		logger:   logger,
	}
}

// Schedule arranges for orderID to be advanced to target after delay. It never
// blocks on the transition itself.
func (j *StatusClockJob) Schedule(orderID kernel.OrderID, target order.Status, delay time.Duration) {
	job := &transitionJob{
		orderID:  orderID,
		target:   target,
		advancer: j.advancer,
		cron:     j.cron,
		logger:   j.logger,
		ready:    make(chan cron.EntryID, 1),
	}

	id := j.cron.Schedule(&onceSchedule{at: time.Now().Add(delay)}, job)
	job.ready <- id

	j.logger.Debug("transition scheduled",
		slog.String("orderId", orderID.String()),
		slog.String("target", target.String()),
		slog.Duration("delay", delay),
	)
}

// Pending returns the number of transitions that have not fired yet.
func (j *StatusClockJob) Pending() int {
	return len(j.cron.Entries())
}

// Start begins firing scheduled transitions.
func (j *StatusClockJob) Start() error {
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status clock job started")
	return nil
}

// Stop stops firing transitions and waits for running ones to finish.
// Transitions still pending are dropped.
func (j *StatusClockJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status clock job stopped")
}

// onceSchedule fires a single time at (or as soon as possible after) at.
//
// cron asks for the next activation once when the entry is registered (or when
// the scheduler starts) and again after every run, so the first answer is the
// activation and every later one is the zero time, which cron never fires.
type onceSchedule struct {
	mu    sync.Mutex
	at    time.Time
	asked bool
}

func (s *onceSchedule) Next(t time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.asked {
		return time.Time{}
	}
	s.asked = true

	if s.at.Before(t) {
		return t
	}
	return s.at
}

type transitionJob struct {
	orderID  kernel.OrderID
	target   order.Status
	advancer OrderStatusAdvancer
	cron     *cron.Cron
	logger   *slog.Logger
	ready    chan cron.EntryID
}

func (j *transitionJob) Run() {
	defer j.cron.Remove(<-j.ready)

	ctx := context.Background()
	cmd, err := commands.NewAdvanceOrderStatusCommand(j.orderID, j.target)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid scheduled transition", "error", err)
		return
	}

	applied, err := j.advancer.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Scheduled transition failed",
			slog.String("orderId", j.orderID.String()),
			slog.String("target", j.target.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	if applied {
		j.logger.InfoContext(ctx, "order status updated",
			slog.String("orderId", j.orderID.String()),
			slog.String("status", j.target.String()),
		)
	}
}
