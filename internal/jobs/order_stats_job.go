package jobs

import (
	"context"
	"log/slog"

	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// OrdersSummaryReader returns order counts.
type OrdersSummaryReader interface {
	Handle(ctx context.Context, query queries.GetOrdersSummaryQuery) (queries.GetOrdersSummaryQueryResponse, error)
}

// OrderStatsRecorder receives the periodic order counts.
type OrderStatsRecorder interface {
	RecordOrderStats(total int, byStatus map[order.Status]int)
}

// OrderStatsJob periodically refreshes order gauges from the store.
type OrderStatsJob struct {
	reader   OrdersSummaryReader
	recorder OrderStatsRecorder
	spec     string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatsJob creates the job. spec is a cron expression or descriptor such
// as "@every 15s".
func NewOrderStatsJob(
	reader OrdersSummaryReader,
	recorder OrderStatsRecorder,
	spec string,
	logger *slog.Logger,
) *OrderStatsJob {
	return &OrderStatsJob{
		reader:   reader,
		recorder: recorder,
		spec:     spec,
		cron:     cron.New(),
		logger:   logger.With("component", "order_stats_job"),
	}
}

// Start refreshes the gauges once and then on every tick of the schedule.
func (j *OrderStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.Refresh); err != nil {
		return err
	}

	j.Refresh()
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started", "schedule", j.spec)
	return nil
}

// Refresh reads the current counts and hands them to the recorder.
func (j *OrderStatsJob) Refresh() {
	ctx := context.Background()
	summary, err := j.reader.Handle(ctx, queries.NewGetOrdersSummaryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
		return
	}

	j.recorder.RecordOrderStats(summary.Total, summary.ByStatus)
}

// Stop stops the order stats job.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
