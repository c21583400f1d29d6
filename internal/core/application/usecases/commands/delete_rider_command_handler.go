package commands

import (
	"context"

	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/pkg/errs"
)

// ErrRiderIsOnDelivery is returned when deleting a rider who still carries a parcel,
// or who is still named on an undelivered one.
var ErrRiderIsOnDelivery = errs.NewConflictError("workStatus", rider.WorkInDelivery)

// DeleteRiderCommandHandler removes a rider record. Parcels keep their rider
// snapshot, so delivered history stays intact.
//
// Under the unconditional release policy a rider is available again as soon as
// they report progress, while the parcel still names them until delivery. The
// parcel store is asked too, so such a rider is not deleted mid-journey.
type DeleteRiderCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteRiderCommandHandler(uowFactory UoWFactory) DeleteRiderCommandHandler {
	return DeleteRiderCommandHandler{uowFactory: uowFactory}
}

func (h DeleteRiderCommandHandler) Handle(ctx context.Context, cmd DeleteRiderCommand) error {
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

	riders := uow.RiderRepository()

	r, err := riders.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}
	if r.WorkStatus() == rider.WorkInDelivery {
		return ErrRiderIsOnDelivery
	}

	open, err := uow.ParcelRepository().HasOpenForRider(ctx, r.ID())
	if err != nil {
		return err
	}
	if open {
		return ErrRiderIsOnDelivery
	}

	if err = riders.Delete(ctx, r.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
