package commands

import (
	"context"
	"errors"
	"fmt"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/pkg/errs"
)

const maxTrackingIDAttempts = 5

var (
	// ErrTrackingIDsExhausted means every generated tracking ID was already taken.
	ErrTrackingIDsExhausted = errs.NewConflictErrorWithCause(
		"trackingId", "generated",
		fmt.Errorf("no free tracking id after %d attempts", maxTrackingIDAttempts),
	)

	// ErrRiderIsNotAssigned is returned when a rider acts on a parcel carried by someone else.
	ErrRiderIsNotAssigned = errs.NewValueIsInvalidErrorWithCause(
		"riderId", errors.New("rider is not assigned to the parcel"))

	// ErrReporterIsNotCarrier is returned when the signed-in rider is not the one on the parcel.
	ErrReporterIsNotCarrier = fmt.Errorf("%w: parcel is carried by another rider", errs.ErrForbidden)
)

// RiderRef names the rider reporting on a parcel: the rider record and the
// e-mail of the signed-in account.
type RiderRef struct {
	ID    kernel.UUID
	Email kernel.Email
}

// TrackingIDGenerator produces candidate tracking IDs.
type TrackingIDGenerator func() (tracking.ID, error)

// NewParcel is the intake data for ParcelStateMachine.Create.
type NewParcel struct {
	Details  parcel.Details
	Sender   parcel.Sender
	Receiver parcel.Receiver
}

// ParcelStateMachine drives parcels through their lifecycle inside a unit of work
// owned by the caller. Every transition writes exactly one tracking event, and
// every rider side effect goes through the RiderAssignmentManager in the same
// transaction.
type ParcelStateMachine struct {
	transitions parcel.TransitionPolicy
	release     parcel.ReleasePolicy
	riders      RiderAssignmentManager
	ledger      TrackingLedger
	clock       Clock
	newID       TrackingIDGenerator
}

func NewParcelStateMachine(
	transitions parcel.TransitionPolicy,
	release parcel.ReleasePolicy,
	ledger TrackingLedger,
	clock Clock,
) ParcelStateMachine {
	if clock == nil {
		clock = SystemClock
	}
	return ParcelStateMachine{
		transitions: transitions,
		release:     release,
		riders:      NewRiderAssignmentManager(),
		ledger:      ledger,
		clock:       clock,
		newID:       tracking.GenerateID,
	}
}

// WithTrackingIDGenerator returns a copy using gen for new tracking IDs.
func (m ParcelStateMachine) WithTrackingIDGenerator(gen TrackingIDGenerator) ParcelStateMachine {
	m.newID = gen
	return m
}

// Riders exposes the assignment manager sharing this machine's transactions.
func (m ParcelStateMachine) Riders() RiderAssignmentManager {
	return m.riders
}

// Ledger exposes the tracking ledger the machine writes to.
func (m ParcelStateMachine) Ledger() TrackingLedger {
	return m.ledger
}

// Create takes a parcel in: unpaid, with a fresh tracking ID and a parcel-created event.
func (m ParcelStateMachine) Create(ctx context.Context, uow UoW, in NewParcel) (*parcel.Parcel, error) {
	trackingID, err := m.freeTrackingID(ctx, uow)
	if err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, in.Details, in.Sender, in.Receiver, m.clock())
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if _, err = m.ledger.Append(ctx, uow, p.TrackingID(), tracking.StatusParcelCreated); err != nil {
		return nil, err
	}

	return p, nil
}

// MarkPaid moves an unpaid parcel to pending-pickup. Only the payment reconciler
// calls it, after deduplicating the gateway transaction.
func (m ParcelStateMachine) MarkPaid(
	ctx context.Context,
	uow UoW,
	parcelID kernel.UUID,
	trackingID tracking.ID,
) (*parcel.Parcel, error) {
	parcels := uow.ParcelRepository()

	p, err := parcels.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if err = p.MarkPaid(trackingID, m.transitions); err != nil {
		return nil, err
	}

	if err = parcels.Update(ctx, p); err != nil {
		return nil, err
	}

	if _, err = m.ledger.Append(ctx, uow, p.TrackingID(), tracking.StatusParcelPaid); err != nil {
		return nil, err
	}

	return p, nil
}

// AssignRider puts the rider on the parcel and marks the rider in-delivery.
func (m ParcelStateMachine) AssignRider(
	ctx context.Context,
	uow UoW,
	parcelID kernel.UUID,
	riderID kernel.UUID,
) (*parcel.Parcel, error) {
	parcels := uow.ParcelRepository()

	p, err := parcels.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	r, err := m.riders.Assign(ctx, uow, riderID)
	if err != nil {
		return nil, err
	}

	if err = p.AssignRider(snapshotOf(r), m.transitions); err != nil {
		return nil, err
	}

	if err = parcels.Update(ctx, p); err != nil {
		return nil, err
	}

	if _, err = m.ledger.Append(ctx, uow, p.TrackingID(), tracking.StatusDriverAssigned); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateStatus applies a rider reported status and, depending on the release
// policy, frees the rider.
func (m ParcelStateMachine) UpdateStatus(
	ctx context.Context,
	uow UoW,
	parcelID kernel.UUID,
	newStatus parcel.Status,
	reporter RiderRef,
) (*parcel.Parcel, error) {
	parcels := uow.ParcelRepository()

	p, err := parcels.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if err = m.checkCarrier(p, reporter); err != nil {
		return nil, err
	}
	bound := p.Rider() != nil

	if err = p.UpdateStatus(newStatus, m.transitions); err != nil {
		return nil, err
	}

	if err = parcels.Update(ctx, p); err != nil {
		return nil, err
	}

	if m.release.ShouldRelease(newStatus) {
		if err = m.releaseCarrier(ctx, uow, reporter.ID, bound); err != nil {
			return nil, err
		}
	}

	if _, err = m.ledger.Append(ctx, uow, p.TrackingID(), newStatus.String()); err != nil {
		return nil, err
	}

	return p, nil
}

// RejectAssignment hands the parcel back, frees the rider and logs the new status.
func (m ParcelStateMachine) RejectAssignment(
	ctx context.Context,
	uow UoW,
	parcelID kernel.UUID,
	newStatus parcel.Status,
	reporter RiderRef,
) (*parcel.Parcel, error) {
	parcels := uow.ParcelRepository()

	p, err := parcels.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if err = m.checkCarrier(p, reporter); err != nil {
		return nil, err
	}
	bound := p.Rider() != nil

	if err = p.RejectAssignment(newStatus, m.transitions); err != nil {
		return nil, err
	}

	if err = parcels.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = m.releaseCarrier(ctx, uow, reporter.ID, bound); err != nil {
		return nil, err
	}

	if _, err = m.ledger.Append(ctx, uow, p.TrackingID(), newStatus.String()); err != nil {
		return nil, err
	}

	return p, nil
}

// Abandon frees the rider of a parcel that is about to disappear, if that rider is
// still bound to it: nothing was reported since assignment, or the release policy
// keeps riders until delivery. A rider deleted in the meantime is ignored.
func (m ParcelStateMachine) Abandon(ctx context.Context, uow UoW, p *parcel.Parcel) error {
	assigned := p.Rider()
	if assigned == nil || p.DeliveryStatus().IsTerminal() {
		return nil
	}

	stillBound := p.DeliveryStatus() == parcel.StatusRiderAssigned ||
		!m.release.ShouldRelease(p.DeliveryStatus())
	if !stillBound {
		return nil
	}

	_, err := m.riders.Release(ctx, uow, assigned.ID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	return err
}

// releaseCarrier frees the rider. A rider record that is gone is only tolerated
// when the parcel named that rider: the parcel must stay closable.
func (m ParcelStateMachine) releaseCarrier(ctx context.Context, uow UoW, riderID kernel.UUID, bound bool) error {
	_, err := m.riders.Release(ctx, uow, riderID)
	if bound && errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	return err
}

// checkCarrier refuses riders other than the assigned one, and accounts other than
// that rider's. Parcels without a rider snapshot (possible under permissive
// transitions) accept any rider.
func (m ParcelStateMachine) checkCarrier(p *parcel.Parcel, reporter RiderRef) error {
	if err := errors.Join(reporter.ID.Validate(), reporter.Email.Validate()); err != nil {
		return err
	}

	assigned := p.Rider()
	if assigned == nil {
		return nil
	}
	if !p.IsAssignedTo(reporter.ID) {
		return ErrRiderIsNotAssigned
	}
	if !assigned.Email.IsEqual(reporter.Email) {
		return ErrReporterIsNotCarrier
	}
	return nil
}

func (m ParcelStateMachine) freeTrackingID(ctx context.Context, uow UoW) (tracking.ID, error) {
	parcels := uow.ParcelRepository()

	for range maxTrackingIDAttempts {
		candidate, err := m.newID()
		if err != nil {
			return tracking.ID{}, err
		}

		taken, err := parcels.ExistsByTrackingID(ctx, candidate)
		if err != nil {
			return tracking.ID{}, err
		}
		if !taken {
			return candidate, nil
		}
	}

	return tracking.ID{}, ErrTrackingIDsExhausted
}

func snapshotOf(r *rider.Rider) parcel.AssignedRider {
	return parcel.AssignedRider{
		ID:    r.ID(),
		Name:  r.Name(),
		Email: r.Email(),
		Phone: r.Phone(),
	}
}
