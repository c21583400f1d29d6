package queries

import (
	"errors"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/pkg/guard"
)

var ErrListTrackingEventsQueryIsNotConstructed = errors.New(
	"ListTrackingEventsQuery must be created via NewListTrackingEventsQuery constructor",
)

// ListTrackingEventsQuery reads the tracking ledger of one tracking ID. An ID no
// parcel owns (or owned) simply has no events.
//
// Example:
//
//	query, err := NewListTrackingEventsQuery("ZAP-3F9A01C2D4")
//	if err != nil {
//	    return err
//	}
//	events, err := handler.Handle(ctx, query)
type ListTrackingEventsQuery struct {
	trackingID tracking.ID
	guard      guard.ConstructorGuard
}

func NewListTrackingEventsQuery(trackingID string) (ListTrackingEventsQuery, error) {
	id, err := tracking.ParseID(trackingID)
	if err != nil {
		return ListTrackingEventsQuery{}, err
	}
	return ListTrackingEventsQuery{trackingID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTrackingEventsQuery) Validate() error {
	return q.guard.Validate(ErrListTrackingEventsQueryIsNotConstructed)
}

func (q ListTrackingEventsQuery) TrackingID() tracking.ID {
	return q.trackingID
}

type TrackingEventResponse struct {
	ID         kernel.UUID
	TrackingID string
	Status     string
	Details    string
	CreatedAt  time.Time
}
