package commands

import (
	"context"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/rider"
)

// RegisterRiderCommandHandler stores a pending rider application. A second
// application with the same e-mail fails with errs.ErrConflict.
type RegisterRiderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewRegisterRiderCommandHandler(uowFactory UoWFactory, clock Clock) RegisterRiderCommandHandler {
	if clock == nil {
		clock = SystemClock
	}
	return RegisterRiderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	r, err := rider.NewRider(kernel.NewUUID(), cmd.Profile(), h.clock())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
