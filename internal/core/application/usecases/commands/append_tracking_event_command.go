package commands

import (
	"errors"
	"strings"

	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/guard"
)

var ErrAppendTrackingEventCommandIsNotConstructed = errors.New(
	"AppendTrackingEventCommand must be created via NewAppendTrackingEventCommand constructor",
)

// AppendTrackingEventCommand adds a manual entry to a tracking history, for example
// a hub scan. The tracking ID does not have to belong to an existing parcel.
type AppendTrackingEventCommand struct {
	trackingID tracking.ID
	status     string

	guard guard.ConstructorGuard
}

func NewAppendTrackingEventCommand(trackingID, status string) (AppendTrackingEventCommand, error) {
	id, err := tracking.ParseID(trackingID)

	status = strings.TrimSpace(status)
	var statusErr error
	if status == "" {
		statusErr = errs.NewValueIsRequiredError("status")
	}

	if err = errors.Join(err, statusErr); err != nil {
		return AppendTrackingEventCommand{}, err
	}

	return AppendTrackingEventCommand{
		trackingID: id,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AppendTrackingEventCommand) Validate() error {
	return c.guard.Validate(ErrAppendTrackingEventCommandIsNotConstructed)
}

func (c AppendTrackingEventCommand) TrackingID() tracking.ID {
	return c.trackingID
}

func (c AppendTrackingEventCommand) Status() string {
	return c.status
}
