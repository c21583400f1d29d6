package jobs

import (
	"context"
	"log/slog"

	"zapshift/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxPublisher drains a batch of committed outbox messages to the broker.
type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error)
}

// OutboxPublisherJob delivers tracking events recorded in the outbox.
type OutboxPublisherJob struct {
	handler   OutboxPublisher
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxPublisherJob(handler OutboxPublisher, schedule string, batchSize int, logger *slog.Logger) *OutboxPublisherJob {
	return &OutboxPublisherJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_publisher_job"),
	}
}

func (j *OutboxPublisherJob) Start() error {
	if _, err := commands.NewPublishOutboxCommand(j.batchSize); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox publisher job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Run publishes one batch.
func (j *OutboxPublisherJob) Run(ctx context.Context) {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "invalid outbox batch", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "outbox publishing failed", "error", err)
		return
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "outbox messages published", "count", sent)
	}
}

func (j *OutboxPublisherJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox publisher job stopped")
}
