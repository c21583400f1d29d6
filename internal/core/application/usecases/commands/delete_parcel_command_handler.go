package commands

import (
	"context"
)

// DeleteParcelCommandHandler removes a parcel. A rider still carrying it is freed
// in the same transaction, otherwise the rider would stay in-delivery forever.
type DeleteParcelCommandHandler struct {
	uowFactory UoWFactory
	machine    ParcelStateMachine
}

func NewDeleteParcelCommandHandler(uowFactory UoWFactory, machine ParcelStateMachine) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
	}
}

func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels := uow.ParcelRepository()

	p, err := parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = h.machine.Abandon(ctx, uow, p); err != nil {
		return err
	}

	if err = parcels.Delete(ctx, p.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
