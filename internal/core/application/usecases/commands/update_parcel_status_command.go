package commands

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/guard"
)

var (
	ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
		"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
	)
	ErrRejectAssignmentCommandIsNotConstructed = errors.New(
		"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
	)
)

// riderReport is what a rider sends about a parcel: the new status and who is reporting.
type riderReport struct {
	parcelID kernel.UUID
	status   parcel.Status
	rider    RiderRef
}

func newRiderReport(parcelID kernel.UUID, status string, riderID kernel.UUID, reporter kernel.Email) (riderReport, error) {
	s, err := parcel.NewStatus(status)

	if err = errors.Join(err, parcelID.Validate(), riderID.Validate(), reporter.Validate()); err != nil {
		return riderReport{}, err
	}

	return riderReport{
		parcelID: parcelID,
		status:   s,
		rider:    RiderRef{ID: riderID, Email: reporter},
	}, nil
}

// UpdateParcelStatusCommand reports delivery progress, e.g. rider-arriving or delivered.
type UpdateParcelStatusCommand struct {
	report riderReport
	guard  guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand takes reporter from the signed-in account, never from the request body.
func NewUpdateParcelStatusCommand(
	parcelID kernel.UUID,
	status string,
	riderID kernel.UUID,
	reporter kernel.Email,
) (UpdateParcelStatusCommand, error) {
	report, err := newRiderReport(parcelID, status, riderID, reporter)
	if err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return UpdateParcelStatusCommand{report: report, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.report.parcelID
}

func (c UpdateParcelStatusCommand) Status() parcel.Status {
	return c.report.status
}

func (c UpdateParcelStatusCommand) RiderID() kernel.UUID {
	return c.report.rider.ID
}

func (c UpdateParcelStatusCommand) Rider() RiderRef {
	return c.report.rider
}

// RejectAssignmentCommand hands a parcel back; status is where the parcel goes next,
// normally pending-pickup.
type RejectAssignmentCommand struct {
	report riderReport
	guard  guard.ConstructorGuard
}

// NewRejectAssignmentCommand takes reporter from the signed-in account, never from the request body.
func NewRejectAssignmentCommand(
	parcelID kernel.UUID,
	status string,
	riderID kernel.UUID,
	reporter kernel.Email,
) (RejectAssignmentCommand, error) {
	report, err := newRiderReport(parcelID, status, riderID, reporter)
	if err != nil {
		return RejectAssignmentCommand{}, err
	}

	return RejectAssignmentCommand{report: report, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) ParcelID() kernel.UUID {
	return c.report.parcelID
}

func (c RejectAssignmentCommand) Status() parcel.Status {
	return c.report.status
}

func (c RejectAssignmentCommand) RiderID() kernel.UUID {
	return c.report.rider.ID
}

func (c RejectAssignmentCommand) Rider() RiderRef {
	return c.report.rider
}
