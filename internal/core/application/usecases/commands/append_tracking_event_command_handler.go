package commands

import (
	"context"

	"zapshift/internal/core/domain/model/tracking"
)

type AppendTrackingEventCommandHandler struct {
	uowFactory UoWFactory
	ledger     TrackingLedger
}

func NewAppendTrackingEventCommandHandler(uowFactory UoWFactory, ledger TrackingLedger) AppendTrackingEventCommandHandler {
	return AppendTrackingEventCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

func (h AppendTrackingEventCommandHandler) Handle(ctx context.Context, cmd AppendTrackingEventCommand) (*tracking.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	event, err := h.ledger.Append(ctx, uow, cmd.TrackingID(), cmd.Status())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}
