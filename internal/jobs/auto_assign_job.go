package jobs

import (
	"context"
	"errors"
	"log/slog"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// AutoAssigner assigns the oldest parcel awaiting pickup to a free rider.
type AutoAssigner interface {
	Handle(ctx context.Context, cmd commands.AutoAssignRiderCommand) (*parcel.Parcel, error)
}

// AutoAssignJob periodically dispatches parcels waiting in pending-pickup.
type AutoAssignJob struct {
	handler  AutoAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewAutoAssignJob(handler AutoAssigner, schedule string, logger *slog.Logger) *AutoAssignJob {
	return &AutoAssignJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "auto_assign_job"),
	}
}

func (j *AutoAssignJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("auto-assign job started", "schedule", j.schedule)
	return nil
}

// Run performs a single assignment attempt. Nothing to assign and nobody free
// are normal outcomes and stay quiet.
func (j *AutoAssignJob) Run(ctx context.Context) {
	p, err := j.handler.Handle(ctx, commands.NewAutoAssignRiderCommand())
	switch {
	case errors.Is(err, commands.ErrNoParcelAwaitingPickup), errors.Is(err, services.ErrRiderNotFound):
		return
	case err != nil:
		j.logger.ErrorContext(ctx, "auto-assign failed", "error", err)
		return
	}

	attrs := []any{"parcel_id", p.ID().String(), "tracking_id", p.TrackingID().String()}
	if r := p.Rider(); r != nil {
		attrs = append(attrs, "rider_id", r.ID.String())
	}
	j.logger.InfoContext(ctx, "parcel assigned", attrs...)
}

func (j *AutoAssignJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("auto-assign job stopped")
}
