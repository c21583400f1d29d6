package commands

import (
	"context"
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/pkg/errs"
)

// RiderAssignmentManager flips a rider's work status in step with parcel
// assignment and release, and applies administrative approval decisions.
// A missing rider is always reported as errs.ErrObjectNotFound.
type RiderAssignmentManager struct{}

func NewRiderAssignmentManager() RiderAssignmentManager {
	return RiderAssignmentManager{}
}

// Assign marks the rider in-delivery.
func (m RiderAssignmentManager) Assign(ctx context.Context, uow UoW, riderID kernel.UUID) (*rider.Rider, error) {
	riders := uow.RiderRepository()

	r, err := riders.Get(ctx, riderID)
	if err != nil {
		return nil, err
	}

	if err = r.StartDelivery(); err != nil {
		return nil, err
	}

	if err = riders.Update(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Release marks the rider available.
func (m RiderAssignmentManager) Release(ctx context.Context, uow UoW, riderID kernel.UUID) (*rider.Rider, error) {
	riders := uow.RiderRepository()

	r, err := riders.Get(ctx, riderID)
	if err != nil {
		return nil, err
	}

	r.Release()

	if err = riders.Update(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Approve records the decision. An approved rider's account, matched by e-mail,
// is promoted to the rider role; a rider without an account is approved anyway.
func (m RiderAssignmentManager) Approve(
	ctx context.Context,
	uow UoW,
	riderID kernel.UUID,
	decision rider.ApprovalStatus,
) (*rider.Rider, error) {
	riders := uow.RiderRepository()

	r, err := riders.Get(ctx, riderID)
	if err != nil {
		return nil, err
	}

	if err = r.Decide(decision); err != nil {
		return nil, err
	}

	if err = riders.Update(ctx, r); err != nil {
		return nil, err
	}

	if decision != rider.ApprovalApproved {
		return r, nil
	}

	users := uow.UserRepository()

	account, err := users.GetByEmail(ctx, r.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	account.PromoteToRider()
	if err = users.Update(ctx, account); err != nil {
		return nil, err
	}

	return r, nil
}
