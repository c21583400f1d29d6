package rider

import (
	"errors"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"
)

var (
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")

	// ErrRiderIsNotApproved is returned when a pending or rejected rider is picked for a parcel.
	ErrRiderIsNotApproved = errs.NewValueIsInvalidErrorWithCause("rider", errors.New("rider is not approved"))

	// ErrRiderIsBusy is returned when the rider already carries a parcel.
	ErrRiderIsBusy = errs.NewConflictError("workStatus", WorkInDelivery)

	// ErrDecisionIsInvalid is returned when an administrator tries to set a rider back to pending.
	ErrDecisionIsInvalid = errs.NewValueIsInvalidErrorWithCause(
		"status", errors.New("decision must be approved or rejected"))
)

// Profile is the registration data a rider submits.
type Profile struct {
	Name     string
	Email    kernel.Email
	Phone    string
	Region   string
	District string
}

// Rider is the aggregate root for a delivery rider.
//
// Invariants:
//   - a new rider is pending and available
//   - only an approved rider can start a delivery
//   - a rider carries at most one parcel at a time
type Rider struct {
	id            kernel.UUID
	profile       Profile
	status        ApprovalStatus
	workStatus    WorkStatus
	createdAt     time.Time
	isConstructed bool
}

// NewRider registers an applicant. The rider stays pending until an administrator decides.
func NewRider(id kernel.UUID, profile Profile, createdAt time.Time) (*Rider, error) {
	r := &Rider{
		status:        ApprovalPending,
		workStatus:    WorkAvailable,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setProfile(profile),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rebuilds a rider from persistence.
func RestoreRider(
	id kernel.UUID,
	profile Profile,
	status ApprovalStatus,
	workStatus WorkStatus,
	createdAt time.Time,
) *Rider {
	return &Rider{
		id:            id,
		profile:       profile,
		status:        status,
		workStatus:    workStatus,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Rider) ID() kernel.UUID {
	return r.id
}

func (r *Rider) Profile() Profile {
	return r.profile
}

func (r *Rider) Name() string {
	return r.profile.Name
}

func (r *Rider) Email() kernel.Email {
	return r.profile.Email
}

func (r *Rider) Phone() string {
	return r.profile.Phone
}

func (r *Rider) District() string {
	return r.profile.District
}

func (r *Rider) Status() ApprovalStatus {
	return r.status
}

func (r *Rider) WorkStatus() WorkStatus {
	return r.workStatus
}

func (r *Rider) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Rider) IsApproved() bool {
	return r.status == ApprovalApproved
}

func (r *Rider) IsAvailable() bool {
	return r.IsApproved() && r.workStatus == WorkAvailable
}

// Decide records an administrator's approval decision. The work status is left
// alone: it changes only when a parcel is assigned or handed back. A rider who is
// carrying a parcel cannot be rejected until that parcel is released.
func (r *Rider) Decide(decision ApprovalStatus) error {
	if !decision.IsDecision() {
		return ErrDecisionIsInvalid
	}
	if decision == ApprovalRejected && r.workStatus == WorkInDelivery {
		return ErrRiderIsBusy
	}
	r.status = decision
	return nil
}

// StartDelivery marks the rider as carrying a parcel.
func (r *Rider) StartDelivery() error {
	if !r.IsApproved() {
		return ErrRiderIsNotApproved
	}
	if r.workStatus == WorkInDelivery {
		return ErrRiderIsBusy
	}
	r.workStatus = WorkInDelivery
	return nil
}

// Release makes the rider available again. Releasing an available rider is a no-op.
func (r *Rider) Release() {
	r.workStatus = WorkAvailable
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Region = strings.TrimSpace(p.Region)
	p.District = strings.TrimSpace(p.District)

	var errList []error
	if p.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if err := p.Email.Validate(); err != nil {
		errList = append(errList, err)
	}
	if p.District == "" {
		errList = append(errList, errs.NewValueIsRequiredError("district"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	r.profile = p
	return nil
}
