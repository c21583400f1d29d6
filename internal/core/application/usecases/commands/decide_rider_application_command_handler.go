package commands

import (
	"context"

	"zapshift/internal/core/domain/model/rider"
)

// DecideRiderApplicationCommandHandler records an approval decision. Approval also
// promotes the matching user account to the rider role, in the same transaction.
type DecideRiderApplicationCommandHandler struct {
	uowFactory UoWFactory
	riders     RiderAssignmentManager
}

func NewDecideRiderApplicationCommandHandler(
	uowFactory UoWFactory,
	riders RiderAssignmentManager,
) DecideRiderApplicationCommandHandler {
	return DecideRiderApplicationCommandHandler{
		uowFactory: uowFactory,
		riders:     riders,
	}
}

func (h DecideRiderApplicationCommandHandler) Handle(
	ctx context.Context,
	cmd DecideRiderApplicationCommand,
) (*rider.Rider, error) {
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

	r, err := h.riders.Approve(ctx, uow, cmd.RiderID(), cmd.Decision())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
