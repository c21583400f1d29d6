package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"
)

// Labels written by the parcel lifecycle itself. Any other label comes from a caller
// supplied delivery status.
const (
	StatusParcelCreated  = "parcel-created"
	StatusParcelPaid     = "parcel-paid"
	StatusDriverAssigned = "driver-assigned"
)

const maxStatusLength = 64

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is one immutable entry of the tracking ledger.
type Event struct {
	id            kernel.UUID
	trackingID    ID
	status        string
	details       string
	createdAt     time.Time
	isConstructed bool
}

// NewEvent builds a ledger entry for status at the given instant. Details is the
// status label with its dashes replaced by spaces ("rider-arriving" -> "rider arriving").
func NewEvent(trackingID ID, status string, createdAt time.Time) (*Event, error) {
	event := &Event{
		id:            kernel.NewUUID(),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		event.setTrackingID(trackingID),
		event.setStatus(status),
	); err != nil {
		return nil, err
	}

	event.details = Details(event.status)
	return event, nil
}

// RestoreEvent rebuilds an event read from storage without re-deriving its fields.
func RestoreEvent(id kernel.UUID, trackingID ID, status, details string, createdAt time.Time) *Event {
	return &Event{
		id:            id,
		trackingID:    trackingID,
		status:        status,
		details:       details,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

// Details renders a status label for display.
func Details(status string) string {
	return strings.ReplaceAll(status, "-", " ")
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID {
	return e.id
}

func (e *Event) TrackingID() ID {
	return e.trackingID
}

func (e *Event) Status() string {
	return e.status
}

func (e *Event) Details() string {
	return e.details
}

func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Event) setTrackingID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.trackingID = id
	return nil
}

func (e *Event) setStatus(status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	if len(status) > maxStatusLength {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"status", len(status), 1, maxStatusLength,
			fmt.Errorf("status label %q is too long", status[:maxStatusLength]),
		)
	}
	e.status = status
	return nil
}
