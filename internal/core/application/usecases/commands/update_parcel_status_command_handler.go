package commands

import (
	"context"

	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/metrics"
)

// UpdateParcelStatusCommandHandler applies rider progress reports.
type UpdateParcelStatusCommandHandler struct {
	uowFactory UoWFactory
	machine    ParcelStateMachine
}

func NewUpdateParcelStatusCommandHandler(uowFactory UoWFactory, machine ParcelStateMachine) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
	}
}

func (h UpdateParcelStatusCommandHandler) Handle(ctx context.Context, cmd UpdateParcelStatusCommand) (*parcel.Parcel, error) {
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

	p, err := h.machine.UpdateStatus(ctx, uow, cmd.ParcelID(), cmd.Status(), cmd.Rider())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ParcelTransitionsTotal.WithLabelValues(cmd.Status().String()).Inc()
	return p, nil
}

// RejectAssignmentCommandHandler returns a parcel to the pool and frees its rider.
type RejectAssignmentCommandHandler struct {
	uowFactory UoWFactory
	machine    ParcelStateMachine
}

func NewRejectAssignmentCommandHandler(uowFactory UoWFactory, machine ParcelStateMachine) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
	}
}

func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) (*parcel.Parcel, error) {
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

	p, err := h.machine.RejectAssignment(ctx, uow, cmd.ParcelID(), cmd.Status(), cmd.Rider())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ParcelTransitionsTotal.WithLabelValues(cmd.Status().String()).Inc()
	return p, nil
}
