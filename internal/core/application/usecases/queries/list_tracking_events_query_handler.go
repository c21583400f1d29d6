package queries

import (
	"context"

	"zapshift/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListTrackingEventsQueryHandler returns ledger entries ordered by creation time.
// Entries sharing a timestamp come back in insertion order (the seq column), so
// concurrent appends are listed the way they were committed.
type ListTrackingEventsQueryHandler struct {
	db *gorm.DB
}

func NewListTrackingEventsQueryHandler(db *gorm.DB) ListTrackingEventsQueryHandler {
	return ListTrackingEventsQueryHandler{db: db}
}

func (h ListTrackingEventsQueryHandler) Handle(
	ctx context.Context,
	query ListTrackingEventsQuery,
) ([]TrackingEventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, tracking_id, status, details, created_at
		FROM tracking_events
		WHERE tracking_id = ?
		ORDER BY created_at ASC, seq ASC
	`, query.TrackingID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]TrackingEventResponse, 0)
	for rows.Next() {
		var (
			event TrackingEventResponse
			id    uuid.UUID
		)
		if err = rows.Scan(&id, &event.TrackingID, &event.Status, &event.Details, &event.CreatedAt); err != nil {
			return nil, err
		}

		event.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		event.CreatedAt = event.CreatedAt.UTC()
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
