package kernel

import (
	"zapshift/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID, or when a
// constructor is handed the nil UUID. It carries the ValueIsRequired kind, so the HTTP
// adapter answers 400.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies parcels, riders, payments, users and tracking events.
// It wraps github.com/google/uuid so the domain never sees the nil UUID.
//
// The zero value is invalid: build identifiers with NewUUID for new aggregates,
// UUIDFromString for ids that arrive over HTTP, and UUIDFromBytes when restoring
// rows. All three refuse the nil UUID. UUID is a comparable value, safe to copy,
// share between goroutines and use as a map key.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//
//	riderID, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//		return err // ValueIsInvalid, answered with 400
//	}
//
//	if p.IsAssignedTo(riderID) {
//		// ...
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. The result is always valid.
//
// Example:
//
//	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, details, sender, receiver, now)
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses an identifier received from a client or a payment gateway.
// It accepts the forms github.com/google/uuid understands:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "6ba7b8109dad11d180b400c04fd430c8"
//
// Malformed input yields a ValueIsInvalid error wrapping the parser's; the nil UUID
// yields ErrUUIDIsNotConstructed.
//
// Example:
//
//	parcelID, err := kernel.UUIDFromString(session.ParcelID)
//	if err != nil {
//		return fmt.Errorf("checkout session %s: %w", session.Reference, err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores an identifier read from storage. b must hold exactly 16
// bytes; anything else is a ValueIsInvalid error.
//
// Example:
//
//	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

// String returns the canonical lower-case hyphenated form, as used in URLs and
// JSON responses.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped google/uuid value for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values name the same identifier.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value. Commands call it on
// every identifier they carry before touching a repository.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
