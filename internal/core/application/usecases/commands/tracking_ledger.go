package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zapshift/internal/core/domain/model/outbox"
	"zapshift/internal/core/domain/model/tracking"
)

// TrackingEventMessage is the broker payload announcing a ledger entry.
type TrackingEventMessage struct {
	EventID    string    `json:"eventId"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TrackingLedger appends events to the tracking ledger inside the caller's unit of
// work. When a topic is configured each event is also queued on the outbox, so the
// broker sees it at least once after the transaction commits.
type TrackingLedger struct {
	topic string
	clock Clock
}

// NewTrackingLedger builds a ledger. An empty topic disables outbox publication.
func NewTrackingLedger(topic string, clock Clock) TrackingLedger {
	if clock == nil {
		clock = SystemClock
	}
	return TrackingLedger{topic: topic, clock: clock}
}

// Append records status for trackingID. It never checks that a parcel owns the ID.
func (l TrackingLedger) Append(
	ctx context.Context,
	uow UoW,
	trackingID tracking.ID,
	status string,
) (*tracking.Event, error) {
	event, err := tracking.NewEvent(trackingID, status, l.clock())
	if err != nil {
		return nil, err
	}

	if err = uow.TrackingRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if l.topic == "" {
		return event, nil
	}

	payload, err := json.Marshal(TrackingEventMessage{
		EventID:    event.ID().String(),
		TrackingID: event.TrackingID().String(),
		Status:     event.Status(),
		Details:    event.Details(),
		CreatedAt:  event.CreatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode tracking event: %w", err)
	}

	message, err := outbox.NewMessage(l.topic, event.TrackingID().String(), payload, event.CreatedAt())
	if err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return nil, err
	}

	return event, nil
}
