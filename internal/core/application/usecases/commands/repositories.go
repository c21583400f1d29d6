// Package commands contains the operations that change parcel, rider, payment and
// user state. Every handler validates its command, opens a unit of work, performs
// the change through the lifecycle collaborators and commits; the deferred rollback
// is a no-op after a successful commit.
package commands

import (
	"context"
	"time"

	"zapshift/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW spans every aggregate touched by the parcel lifecycle. Parcel, rider,
	// payment and tracking writes of one command commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   parcel, err := machine.AssignRider(ctx, uow, parcelID, riderID)
	//   ...
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		RiderRepoFactory
		PaymentRepoFactory
		TrackingRepoFactory
		UserRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Clock supplies timestamps; tests pin it.
type Clock func() time.Time

// SystemClock returns the current UTC time.
func SystemClock() time.Time {
	return time.Now().UTC()
}
