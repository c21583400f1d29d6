package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"zapshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("duplicate key")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "object not found",
			err:      errs.NewObjectNotFoundError("parcelId", "p-1"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: p-1",
		},
		{
			name:     "object not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("trackingId", "ZAP-1", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: trackingId, ID is: ZAP-1 (cause: duplicate key)",
		},
		{
			name:     "conflict",
			err:      errs.NewConflictError("transactionId", "pi_1"),
			sentinel: errs.ErrConflict,
			message:  "conflict: param is: transactionId, value is: pi_1",
		},
		{
			name:     "conflict with cause",
			err:      errs.NewConflictErrorWithCause("email", "nadia@example.com", cause),
			sentinel: errs.ErrConflict,
			message:  "conflict: param is: email, value is: nadia@example.com (cause: duplicate key)",
		},
		{
			name:     "value is invalid",
			err:      errs.NewValueIsInvalidError("deliveryStatus"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: deliveryStatus",
		},
		{
			name:     "value is invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("email", errors.New("missing @")),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: email (cause: missing @)",
		},
		{
			name:     "value is required",
			err:      errs.NewValueIsRequiredError("parcelName"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: parcelName",
		},
		{
			name:     "value is required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("riderId", errors.New("empty")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: riderId (cause: empty)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("limit", 51, 1, 50),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 51 is limit, min value is 1, max value is 50",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("weight", -1, 0, "unbounded", errors.New("negative")),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -1 is weight, min value is 0, max value is unbounded (cause: negative)",
		},
		{
			name:     "upstream",
			err:      errs.NewUpstreamUnavailableError("stripe", errors.New("i/o timeout")),
			sentinel: errs.ErrUpstreamUnavailable,
			message:  "upstream is unavailable: stripe (cause: i/o timeout)",
		},
		{
			name:     "upstream without cause",
			err:      errs.NewUpstreamUnavailableError("kafka", nil),
			sentinel: errs.ErrUpstreamUnavailable,
			message:  "upstream is unavailable: kafka",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.sentinel, errors.Unwrap(tt.err))
			require.ErrorIs(t, fmt.Errorf("handle: %w", tt.err), tt.sentinel)
		})
	}
}

func TestValuesStayOnOneLine(t *testing.T) {
	err := errs.NewConflictError("parcelName", "Books\nand more")
	assert.Equal(t, "conflict: param is: parcelName, value is: Books and more", err.Error())
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errs.ErrObjectNotFound,
		errs.ErrConflict,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsRequired,
		errs.ErrValueIsOutOfRange,
		errs.ErrUpstreamUnavailable,
		errs.ErrUnauthorized,
		errs.ErrForbidden,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestErrorAs(t *testing.T) {
	wrapped := fmt.Errorf("load parcel: %w", errs.NewObjectNotFoundError("parcelId", "p-1"))

	var target *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "parcelId", target.ParamName)
	assert.Equal(t, "p-1", target.ID)
}

func TestJoinedValidationErrors(t *testing.T) {
	err := errors.Join(
		errs.NewValueIsRequiredError("receiverName"),
		errs.NewValueIsInvalidError("parcelType"),
	)

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.NotErrorIs(t, err, errs.ErrConflict)
}
