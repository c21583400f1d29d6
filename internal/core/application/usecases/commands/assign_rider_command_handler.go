package commands

import (
	"context"

	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/metrics"
)

// AssignRiderCommandHandler applies an administrator's rider choice.
//
// Example:
//
//	cmd, _ := NewAssignRiderCommand(parcelID, riderID)
//	p, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // parcel or rider is gone
//	case errors.Is(err, errs.ErrConflict):
//	    // rider is already carrying a parcel
//	case err != nil:
//	    return err
//	}
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
	machine    ParcelStateMachine
}

func NewAssignRiderCommandHandler(uowFactory UoWFactory, machine ParcelStateMachine) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
	}
}

func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) (*parcel.Parcel, error) {
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

	p, err := h.machine.AssignRider(ctx, uow, cmd.ParcelID(), cmd.RiderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ParcelTransitionsTotal.WithLabelValues(p.DeliveryStatus().String()).Inc()
	return p, nil
}
