package commands_test

import (
	"context"
	"errors"
	"testing"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sequence(ids ...tracking.ID) commands.TrackingIDGenerator {
	next := 0
	return func() (tracking.ID, error) {
		id := ids[next%len(ids)]
		next++
		return id, nil
	}
}

func riderWithWork(status rider.WorkStatus) any {
	return mock.MatchedBy(func(r *rider.Rider) bool {
		return r.WorkStatus() == status
	})
}

func TestParcelStateMachine_Create_RegeneratesTakenTrackingID(t *testing.T) {
	ctx := t.Context()
	taken := mustTrackingID(t, "ZAP-0000000001")
	free := mustTrackingID(t, "ZAP-AB12CD34EF")

	uow, r := newUoW()
	mock.InOrder(
		r.parcels.On("ExistsByTrackingID", ctx, taken).Return(true, nil).Once(),
		r.parcels.On("ExistsByTrackingID", ctx, free).Return(false, nil).Once(),
		r.parcels.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		r.tracking.On("Append", ctx, eventWithStatus(tracking.StatusParcelCreated)).Return(nil).Once(),
	)

	machine := newMachine().WithTrackingIDGenerator(sequence(taken, free))
	p, err := machine.Create(ctx, uow, parcelIntake(t))

	require.NoError(t, err)
	assert.Equal(t, free, p.TrackingID())
	assert.Equal(t, parcel.StatusUnpaid, p.DeliveryStatus())
	assert.Equal(t, parcel.PaymentUnpaid, p.PaymentStatus())
	assert.Nil(t, p.Rider())
	r.assert(t)
}

func TestParcelStateMachine_Create_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := t.Context()
	taken := mustTrackingID(t, "ZAP-0000000001")

	uow, r := newUoW()
	r.parcels.On("ExistsByTrackingID", ctx, taken).Return(true, nil)

	machine := newMachine().WithTrackingIDGenerator(sequence(taken))
	_, err := machine.Create(ctx, uow, parcelIntake(t))

	require.ErrorIs(t, err, commands.ErrTrackingIDsExhausted)
	require.ErrorIs(t, err, errs.ErrConflict)
	r.parcels.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.tracking.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_Create_InvalidIntake(t *testing.T) {
	ctx := t.Context()

	uow, r := newUoW()
	r.parcels.On("ExistsByTrackingID", ctx, mock.Anything).Return(false, nil).Once()

	in := parcelIntake(t)
	in.Details.Name = "  "

	_, err := newMachine().Create(ctx, uow, in)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	r.parcels.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_MarkPaid(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusUnpaid, parcel.PaymentUnpaid, nil)
	trackingBefore := p.TrackingID()

	uow, r := newUoW()
	mock.InOrder(
		r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.tracking.On("Append", ctx, eventWithStatus(tracking.StatusParcelPaid)).Return(nil).Once(),
	)

	paid, err := newMachine().MarkPaid(ctx, uow, p.ID(), p.TrackingID())

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusPendingPickup, paid.DeliveryStatus())
	assert.Equal(t, parcel.PaymentPaid, paid.PaymentStatus())
	assert.Equal(t, trackingBefore, paid.TrackingID())
	r.assert(t)
}

func TestParcelStateMachine_MarkPaid_UnknownParcel(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	uow, r := newUoW()
	r.parcels.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("parcelId", id)).Once()

	_, err := newMachine().MarkPaid(ctx, uow, id, mustTrackingID(t, "ZAP-AB12CD34EF"))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	r.tracking.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_MarkPaid_TrackingMismatch(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusUnpaid, parcel.PaymentUnpaid, nil)

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	_, err := newMachine().MarkPaid(ctx, uow, p.ID(), mustTrackingID(t, "ZAP-FFFFFFFFFF"))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, parcel.StatusUnpaid, p.DeliveryStatus())
	r.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_AssignRider(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusPendingPickup, parcel.PaymentPaid, nil)
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkAvailable)

	uow, r := newUoW()
	mock.InOrder(
		r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		r.riders.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once(),
		r.riders.On("Update", ctx, riderWithWork(rider.WorkInDelivery)).Return(nil).Once(),
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.tracking.On("Append", ctx, eventWithStatus(tracking.StatusDriverAssigned)).Return(nil).Once(),
	)

	assigned, err := newMachine().AssignRider(ctx, uow, p.ID(), carrier.ID())

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusRiderAssigned, assigned.DeliveryStatus())
	assert.Equal(t, snapshotOf(carrier), assigned.Rider())
	assert.Equal(t, rider.WorkInDelivery, carrier.WorkStatus())
	r.assert(t)
}

func TestParcelStateMachine_AssignRider_MissingRider(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusPendingPickup, parcel.PaymentPaid, nil)
	riderID := kernel.NewUUID()

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	r.riders.On("Get", ctx, riderID).Return(nil, errs.NewObjectNotFoundError("riderId", riderID)).Once()

	_, err := newMachine().AssignRider(ctx, uow, p.ID(), riderID)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, parcel.StatusPendingPickup, p.DeliveryStatus())
	r.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.tracking.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_AssignRider_RiderNotApproved(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusPendingPickup, parcel.PaymentPaid, nil)
	applicant := newRider(t, rider.ApprovalPending, rider.WorkAvailable)

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	r.riders.On("Get", ctx, applicant.ID()).Return(applicant, nil).Once()

	_, err := newMachine().AssignRider(ctx, uow, p.ID(), applicant.ID())

	require.ErrorIs(t, err, rider.ErrRiderIsNotApproved)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	r.riders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_AssignRider_UnpaidParcelRejectedByStrictTable(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusUnpaid, parcel.PaymentUnpaid, nil)
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkAvailable)

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	r.riders.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once()
	r.riders.On("Update", ctx, carrier).Return(nil).Once()

	_, err := newMachine().AssignRider(ctx, uow, p.ID(), carrier.ID())

	// The rider update above is rolled back with the unit of work.
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	r.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.tracking.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_UpdateStatus_ReleasePolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      parcel.ReleasePolicy
		newStatus   parcel.Status
		wantRelease bool
	}{
		{"unconditional releases on progress", parcel.ReleaseUnconditional, parcel.StatusRiderArriving, true},
		{"unconditional releases on delivery", parcel.ReleaseUnconditional, parcel.StatusDelivered, true},
		{"terminal-only keeps rider on progress", parcel.ReleaseTerminalOnly, parcel.StatusRiderArriving, false},
		{"terminal-only releases on delivery", parcel.ReleaseTerminalOnly, parcel.StatusDelivered, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			carrier := newRider(t, rider.ApprovalApproved, rider.WorkInDelivery)
			p := newParcelIn(t, parcel.StatusRiderAssigned, parcel.PaymentPaid, snapshotOf(carrier))

			uow, r := newUoW()
			r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
			r.parcels.On("Update", ctx, p).Return(nil).Once()
			if tt.wantRelease {
				r.riders.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once()
				r.riders.On("Update", ctx, riderWithWork(rider.WorkAvailable)).Return(nil).Once()
			}
			r.tracking.On("Append", ctx, eventWithStatus(tt.newStatus.String())).Return(nil).Once()

			machine := commands.NewParcelStateMachine(
				parcel.StrictTransitions(),
				tt.policy,
				commands.NewTrackingLedger("", fixedClock),
				fixedClock,
			)
			updated, err := machine.UpdateStatus(ctx, uow, p.ID(), tt.newStatus, refOf(carrier))

			require.NoError(t, err)
			assert.Equal(t, tt.newStatus, updated.DeliveryStatus())
			assert.Equal(t, snapshotOf(carrier), updated.Rider())
			if tt.wantRelease {
				assert.Equal(t, rider.WorkAvailable, carrier.WorkStatus())
			} else {
				assert.Equal(t, rider.WorkInDelivery, carrier.WorkStatus())
				r.riders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			}
			r.assert(t)
		})
	}
}

func TestParcelStateMachine_UpdateStatus_OtherRider(t *testing.T) {
	ctx := t.Context()
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkInDelivery)
	p := newParcelIn(t, parcel.StatusRiderAssigned, parcel.PaymentPaid, snapshotOf(carrier))

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	other := commands.RiderRef{ID: kernel.NewUUID(), Email: carrier.Email()}
	_, err := newMachine().UpdateStatus(ctx, uow, p.ID(), parcel.StatusDelivered, other)

	require.ErrorIs(t, err, commands.ErrRiderIsNotAssigned)
	assert.Equal(t, parcel.StatusRiderAssigned, p.DeliveryStatus())
	r.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_ReportFromAnotherAccountIsForbidden(t *testing.T) {
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkInDelivery)
	impostor := commands.RiderRef{ID: carrier.ID(), Email: mustEmail(t, "sami@example.com")}

	tests := []struct {
		name   string
		reject bool
	}{
		{"update", false},
		{"reject", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			p := newParcelIn(t, parcel.StatusRiderArriving, parcel.PaymentPaid, snapshotOf(carrier))

			uow, r := newUoW()
			r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

			var err error
			if tt.reject {
				_, err = newMachine().RejectAssignment(ctx, uow, p.ID(), parcel.StatusPendingPickup, impostor)
			} else {
				_, err = newMachine().UpdateStatus(ctx, uow, p.ID(), parcel.StatusDelivered, impostor)
			}

			require.ErrorIs(t, err, commands.ErrReporterIsNotCarrier)
			assert.ErrorIs(t, err, errs.ErrForbidden)
			assert.Equal(t, parcel.StatusRiderArriving, p.DeliveryStatus())
			r.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			r.riders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}
}

func TestParcelStateMachine_UpdateStatus_StrictRejectsUnknownTransition(t *testing.T) {
	ctx := t.Context()
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkInDelivery)
	p := newParcelIn(t, parcel.StatusRiderAssigned, parcel.PaymentPaid, snapshotOf(carrier))

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	_, err := newMachine().UpdateStatus(ctx, uow, p.ID(), parcel.Status("lost-in-transit"), refOf(carrier))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	r.tracking.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_UpdateStatus_PermissiveAcceptsAnyLabel(t *testing.T) {
	ctx := t.Context()
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkInDelivery)
	p := newParcelIn(t, parcel.StatusRiderAssigned, parcel.PaymentPaid, snapshotOf(carrier))
	custom := parcel.Status("reached-sorting-hub")

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	r.parcels.On("Update", ctx, p).Return(nil).Once()
	r.riders.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once()
	r.riders.On("Update", ctx, carrier).Return(nil).Once()
	r.tracking.On("Append", ctx, eventWithStatus("reached-sorting-hub")).Return(nil).Once()

	machine := commands.NewParcelStateMachine(
		parcel.PermissiveTransitions(),
		parcel.ReleaseUnconditional,
		commands.NewTrackingLedger("", fixedClock),
		fixedClock,
	)
	updated, err := machine.UpdateStatus(ctx, uow, p.ID(), custom, refOf(carrier))

	require.NoError(t, err)
	assert.Equal(t, custom, updated.DeliveryStatus())
	r.assert(t)
}

func TestParcelStateMachine_UpdateStatus_DeliveredIsFinal(t *testing.T) {
	ctx := t.Context()
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkAvailable)
	p := newParcelIn(t, parcel.StatusDelivered, parcel.PaymentPaid, snapshotOf(carrier))

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	machine := commands.NewParcelStateMachine(
		parcel.PermissiveTransitions(),
		parcel.ReleaseUnconditional,
		commands.NewTrackingLedger("", fixedClock),
		fixedClock,
	)
	_, err := machine.UpdateStatus(ctx, uow, p.ID(), parcel.StatusRiderArriving, refOf(carrier))

	require.ErrorIs(t, err, parcel.ErrParcelIsDelivered)
}

func TestParcelStateMachine_RejectAssignment(t *testing.T) {
	ctx := t.Context()
	carrier := newRider(t, rider.ApprovalApproved, rider.WorkInDelivery)
	p := newParcelIn(t, parcel.StatusRiderAssigned, parcel.PaymentPaid, snapshotOf(carrier))

	uow, r := newUoW()
	mock.InOrder(
		r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.riders.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once(),
		r.riders.On("Update", ctx, riderWithWork(rider.WorkAvailable)).Return(nil).Once(),
		r.tracking.On("Append", ctx, eventWithStatus(parcel.StatusPendingPickup.String())).Return(nil).Once(),
	)

	rejected, err := newMachine().RejectAssignment(ctx, uow, p.ID(), parcel.StatusPendingPickup, refOf(carrier))

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusPendingPickup, rejected.DeliveryStatus())
	assert.Nil(t, rejected.Rider())
	assert.Equal(t, rider.WorkAvailable, carrier.WorkStatus())
	r.assert(t)
}

func TestParcelStateMachine_DeletedRiderStillClosesParcel(t *testing.T) {
	gone := newRider(t, rider.ApprovalApproved, rider.WorkAvailable)

	tests := []struct {
		name   string
		status parcel.Status
		act    func(context.Context, commands.ParcelStateMachine, *parcel.Parcel, commands.UoW) (*parcel.Parcel, error)
	}{
		{
			name:   "delivered",
			status: parcel.StatusDelivered,
			act: func(ctx context.Context, m commands.ParcelStateMachine, p *parcel.Parcel, uow commands.UoW) (*parcel.Parcel, error) {
				return m.UpdateStatus(ctx, uow, p.ID(), parcel.StatusDelivered, refOf(gone))
			},
		},
		{
			name:   "rejected",
			status: parcel.StatusPendingPickup,
			act: func(ctx context.Context, m commands.ParcelStateMachine, p *parcel.Parcel, uow commands.UoW) (*parcel.Parcel, error) {
				return m.RejectAssignment(ctx, uow, p.ID(), parcel.StatusPendingPickup, refOf(gone))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			p := newParcelIn(t, parcel.StatusRiderArriving, parcel.PaymentPaid, snapshotOf(gone))

			uow, r := newUoW()
			r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
			r.parcels.On("Update", ctx, p).Return(nil).Once()
			r.riders.On("Get", ctx, gone.ID()).Return(nil, errs.NewObjectNotFoundError("rider", gone.ID())).Once()
			r.tracking.On("Append", ctx, eventWithStatus(tt.status.String())).Return(nil).Once()

			closed, err := tt.act(ctx, newMachine(), p, uow)

			require.NoError(t, err)
			assert.Equal(t, tt.status, closed.DeliveryStatus())
			r.riders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			r.assert(t)
		})
	}
}

func TestParcelStateMachine_UpdateStatus_UnknownRiderWithoutSnapshot(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusPendingPickup, parcel.PaymentPaid, nil)
	stranger := kernel.NewUUID()

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	r.parcels.On("Update", ctx, p).Return(nil).Once()
	r.riders.On("Get", ctx, stranger).Return(nil, errs.NewObjectNotFoundError("rider", stranger)).Once()

	machine := commands.NewParcelStateMachine(
		parcel.PermissiveTransitions(),
		parcel.ReleaseUnconditional,
		commands.NewTrackingLedger("", fixedClock),
		fixedClock,
	)
	reporter := commands.RiderRef{ID: stranger, Email: mustEmail(t, "stranger@example.com")}
	_, err := machine.UpdateStatus(ctx, uow, p.ID(), parcel.StatusRiderArriving, reporter)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	r.tracking.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestParcelStateMachine_TrackingFailureAbortsTransition(t *testing.T) {
	ctx := t.Context()
	p := newParcelIn(t, parcel.StatusUnpaid, parcel.PaymentUnpaid, nil)
	storeErr := errors.New("connection reset")

	uow, r := newUoW()
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	r.parcels.On("Update", ctx, p).Return(nil).Once()
	r.tracking.On("Append", ctx, mock.Anything).Return(storeErr).Once()

	_, err := newMachine().MarkPaid(ctx, uow, p.ID(), p.TrackingID())

	require.ErrorIs(t, err, storeErr)
}

func TestParcelStateMachine_Abandon(t *testing.T) {
	tests := []struct {
		name        string
		policy      parcel.ReleasePolicy
		status      parcel.Status
		wantRelease bool
	}{
		{"freshly assigned", parcel.ReleaseUnconditional, parcel.StatusRiderAssigned, true},
		{"progress already released the rider", parcel.ReleaseUnconditional, parcel.StatusRiderArriving, false},
		{"terminal-only still holds the rider", parcel.ReleaseTerminalOnly, parcel.StatusPickedUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			carrier := newRider(t, rider.ApprovalApproved, rider.WorkInDelivery)
			p := newParcelIn(t, tt.status, parcel.PaymentPaid, snapshotOf(carrier))

			uow, r := newUoW()
			if tt.wantRelease {
				r.riders.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once()
				r.riders.On("Update", ctx, carrier).Return(nil).Once()
			}

			machine := commands.NewParcelStateMachine(
				parcel.StrictTransitions(),
				tt.policy,
				commands.NewTrackingLedger("", fixedClock),
				fixedClock,
			)
			require.NoError(t, machine.Abandon(ctx, uow, p))

			if !tt.wantRelease {
				r.riders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			}
			r.assert(t)
		})
	}
}
