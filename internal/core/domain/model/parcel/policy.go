package parcel

import (
	"fmt"

	"zapshift/internal/pkg/errs"
)

// TransitionPolicy decides which delivery status changes are legal.
type TransitionPolicy interface {
	// Allow checks a forward move, including assignment and rider reported updates.
	Allow(from, to Status) error
	// AllowRejection checks a rider handing a parcel back.
	AllowRejection(from, to Status) error
	Name() string
}

const (
	TransitionsStrict     = "strict"
	TransitionsPermissive = "permissive"
)

func ParseTransitionPolicy(name string) (TransitionPolicy, error) {
	switch name {
	case TransitionsStrict, "":
		return StrictTransitions(), nil
	case TransitionsPermissive:
		return PermissiveTransitions(), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"transition policy",
			fmt.Errorf("%q is neither %q nor %q", name, TransitionsStrict, TransitionsPermissive),
		)
	}
}

type strictTransitions struct {
	forward   map[Status][]Status
	rejection map[Status][]Status
}

// StrictTransitions enforces the table
//
//	unpaid -> pending-pickup -> rider-assigned -> {rider-arriving, parcel-picked-up, delivered}
//	rider-arriving -> {parcel-picked-up, delivered}
//	parcel-picked-up -> delivered
//
// and lets a rider reject from rider-assigned or rider-arriving back to pending-pickup.
func StrictTransitions() TransitionPolicy {
	return strictTransitions{
		forward: map[Status][]Status{
			StatusUnpaid:        {StatusPendingPickup},
			StatusPendingPickup: {StatusRiderAssigned},
			StatusRiderAssigned: {StatusRiderArriving, StatusPickedUp, StatusDelivered},
			StatusRiderArriving: {StatusPickedUp, StatusDelivered},
			StatusPickedUp:      {StatusDelivered},
		},
		rejection: map[Status][]Status{
			StatusRiderAssigned: {StatusPendingPickup},
			StatusRiderArriving: {StatusPendingPickup},
		},
	}
}

func (p strictTransitions) Allow(from, to Status) error {
	return check(p.forward, from, to)
}

func (p strictTransitions) AllowRejection(from, to Status) error {
	return check(p.rejection, from, to)
}

func (strictTransitions) Name() string {
	return TransitionsStrict
}

func check(table map[Status][]Status, from, to Status) error {
	for _, allowed := range table[from] {
		if allowed == to {
			return nil
		}
	}
	return NewTransitionError(from, to)
}

type permissiveTransitions struct{}

// PermissiveTransitions accepts any label from any status, the way the
// first version of the service behaved.
func PermissiveTransitions() TransitionPolicy {
	return permissiveTransitions{}
}

func (permissiveTransitions) Allow(_, to Status) error {
	return to.Validate()
}

func (permissiveTransitions) AllowRejection(_, to Status) error {
	return to.Validate()
}

func (permissiveTransitions) Name() string {
	return TransitionsPermissive
}

// NewTransitionError reports a status change the active policy refuses.
func NewTransitionError(from, to Status) *errs.ValueIsInvalidError {
	return errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus",
		fmt.Errorf("transition from %q to %q is not allowed", from, to),
	)
}

// ReleasePolicy decides whether a rider reported status update frees the rider.
type ReleasePolicy string

const (
	// ReleaseUnconditional frees the rider on every status update.
	ReleaseUnconditional ReleasePolicy = "unconditional"
	// ReleaseTerminalOnly frees the rider only once the parcel is delivered.
	ReleaseTerminalOnly ReleasePolicy = "terminal-only"
)

func ParseReleasePolicy(name string) (ReleasePolicy, error) {
	switch p := ReleasePolicy(name); p {
	case ReleaseUnconditional, ReleaseTerminalOnly:
		return p, nil
	case "":
		return ReleaseUnconditional, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"release policy",
			fmt.Errorf("%q is neither %q nor %q", name, ReleaseUnconditional, ReleaseTerminalOnly),
		)
	}
}

func (p ReleasePolicy) ShouldRelease(newStatus Status) bool {
	if p == ReleaseTerminalOnly {
		return newStatus.IsTerminal()
	}
	return true
}
