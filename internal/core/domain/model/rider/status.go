package rider

import (
	"fmt"

	"zapshift/internal/pkg/errs"
)

// ApprovalStatus is the administrative state of a rider application. A pending rider
// is approved or rejected; an administrator may later flip between the two.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(raw string) (ApprovalStatus, error) {
	s := ApprovalStatus(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s ApprovalStatus) Validate() error {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a rider approval status", string(s)))
	}
}

// IsDecision reports whether an administrator may set s.
func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

func (s ApprovalStatus) String() string {
	return string(s)
}

// WorkStatus tracks whether a rider is carrying a parcel.
type WorkStatus string

const (
	WorkAvailable  WorkStatus = "available"
	WorkInDelivery WorkStatus = "in-delivery"
)

func ParseWorkStatus(raw string) (WorkStatus, error) {
	s := WorkStatus(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s WorkStatus) Validate() error {
	switch s {
	case WorkAvailable, WorkInDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("workStatus", fmt.Errorf("%q is not a rider work status", string(s)))
	}
}

func (s WorkStatus) String() string {
	return string(s)
}
