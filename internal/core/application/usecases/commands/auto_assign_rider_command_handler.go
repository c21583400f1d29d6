package commands

import (
	"context"
	"errors"

	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/services"
	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/metrics"
)

var ErrNoParcelAwaitingPickup = errors.New("no parcel awaiting pickup")

// AutoAssignRiderCommandHandler matches the oldest paid, unassigned parcel that some
// free rider can reach with a rider from the sender's district. Parcels from
// districts without a free rider are passed over, so they never hold up the rest of
// the queue. The assignment goes through the state machine, so it is logged exactly
// like a manual one.
//
// Example:
//
//	err := handler.Handle(ctx, NewAutoAssignRiderCommand())
//	switch {
//	case errors.Is(err, ErrNoParcelAwaitingPickup):
//	    // nothing to do for the free riders
//	case errors.Is(err, services.ErrRiderNotFound):
//	    // every rider is busy
//	case err != nil:
//	    return err
//	}
type AutoAssignRiderCommandHandler struct {
	uowFactory UoWFactory
	machine    ParcelStateMachine
	dispatcher services.RiderDispatcher
}

func NewAutoAssignRiderCommandHandler(uowFactory UoWFactory, machine ParcelStateMachine) AutoAssignRiderCommandHandler {
	return AutoAssignRiderCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		dispatcher: services.NewRiderDispatcher(),
	}
}

func (h AutoAssignRiderCommandHandler) Handle(ctx context.Context, cmd AutoAssignRiderCommand) (*parcel.Parcel, error) {
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

	riders := uow.RiderRepository()

	districts, err := riders.GetAvailableDistricts(ctx)
	if err != nil {
		return nil, err
	}
	if len(districts) == 0 {
		return nil, services.ErrRiderNotFound
	}

	waiting, err := uow.ParcelRepository().GetFirstAwaitingPickup(ctx, districts)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoParcelAwaitingPickup
	}
	if err != nil {
		return nil, err
	}

	candidates, err := riders.GetAllAvailableInDistrict(ctx, waiting.Sender().District)
	if err != nil {
		return nil, err
	}

	chosen, err := h.dispatcher.Select(waiting, candidates)
	if err != nil {
		return nil, err
	}

	assigned, err := h.machine.AssignRider(ctx, uow, waiting.ID(), chosen.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ParcelTransitionsTotal.WithLabelValues(assigned.DeliveryStatus().String()).Inc()
	return assigned, nil
}
