package parcel

import (
	"fmt"
	"strings"

	"zapshift/internal/pkg/errs"
)

const maxStatusLength = 64

// Status is a delivery status label.
type Status string

const (
	StatusUnpaid        Status = "unpaid"
	StatusPendingPickup Status = "pending-pickup"
	StatusRiderAssigned Status = "rider-assigned"
	StatusRiderArriving Status = "rider-arriving"
	StatusPickedUp      Status = "parcel-picked-up"
	StatusDelivered     Status = "delivered"
)

// NewStatus accepts any non-empty label, known or not.
func NewStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s Status) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("deliveryStatus")
	}
	if len(s) > maxStatusLength {
		return errs.NewValueIsOutOfRangeError("deliveryStatus length", len(s), 1, maxStatusLength)
	}
	if strings.ContainsAny(string(s), " \t\n") {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryStatus",
			fmt.Errorf("%q must not contain whitespace", string(s)),
		)
	}
	return nil
}

// IsTerminal reports whether the parcel has reached the end of its journey.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

func (s Status) String() string {
	return string(s)
}

// PaymentStatus mirrors the gateway's view of the parcel charge.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}
