// Package trackingrepo is the append-only store of tracking events.
package trackingrepo

import (
	"time"

	"zapshift/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingEventDTO is one ledger row. Seq is assigned by the database on insert and
// breaks ties between events sharing a timestamp, so reads are ordered by
// (created_at, seq). tracking_id is a soft reference: no foreign key to parcels.
type TrackingEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement;not null;index"`
	TrackingID string    `gorm:"type:varchar(32);not null;index:idx_tracking_events_tracking_created,priority:1"`
	Status     string    `gorm:"type:varchar(64);not null"`
	Details    string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"not null;index:idx_tracking_events_tracking_created,priority:2"`
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(e *tracking.Event) TrackingEventDTO {
	return TrackingEventDTO{
		ID:         e.ID().Bytes(),
		TrackingID: e.TrackingID().String(),
		Status:     e.Status(),
		Details:    e.Details(),
		CreatedAt:  e.CreatedAt(),
	}
}
