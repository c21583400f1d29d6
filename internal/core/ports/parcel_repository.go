// Package ports defines the contracts between the parcel lifecycle core and its
// infrastructure: repositories, the unit of work and external collaborators.
package ports

import (
	"context"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/tracking"
)

// ParcelRepository persists parcel aggregates.
type ParcelRepository interface {
	// Add stores a new parcel. A tracking ID already owned by another parcel
	// yields errs.ErrConflict.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists status, payment and rider changes of an existing parcel.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get loads a parcel and locks its row for the rest of the transaction.
	// Returns errs.ErrObjectNotFound when the parcel does not exist.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// ExistsByTrackingID reports whether a parcel already carries the tracking ID.
	ExistsByTrackingID(ctx context.Context, id tracking.ID) (bool, error)

	// GetFirstAwaitingPickup returns the oldest paid parcel without a rider whose
	// sender district is one of districts (case-insensitive), skipping rows locked
	// by concurrent dispatchers. Returns errs.ErrObjectNotFound when none matches.
	GetFirstAwaitingPickup(ctx context.Context, districts []string) (*parcel.Parcel, error)

	// HasOpenForRider reports whether an undelivered parcel still names the rider.
	HasOpenForRider(ctx context.Context, riderID kernel.UUID) (bool, error)

	// Delete removes a parcel. Its tracking events are kept.
	Delete(ctx context.Context, id kernel.UUID) error
}
