package commands

import (
	"context"

	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/metrics"
)

// CreateParcelCommandHandler books a parcel: the parcel row and its parcel-created
// event are written in one transaction.
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
	machine    ParcelStateMachine
}

func NewCreateParcelCommandHandler(uowFactory UoWFactory, machine ParcelStateMachine) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
	}
}

// Handle returns the stored parcel, including its generated tracking ID.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
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

	p, err := h.machine.Create(ctx, uow, NewParcel{
		Details:  cmd.Details(),
		Sender:   cmd.Sender(),
		Receiver: cmd.Receiver(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ParcelsCreatedTotal.Inc()
	return p, nil
}
