package ports

import (
	"context"

	"zapshift/internal/core/domain/model/tracking"
)

// TrackingRepository is the write side of the tracking ledger. Reads go through
// queries.ListTrackingEventsQueryHandler.
type TrackingRepository interface {
	// Append inserts an event. It never checks that a parcel owns the tracking ID.
	Append(ctx context.Context, event *tracking.Event) error
}
