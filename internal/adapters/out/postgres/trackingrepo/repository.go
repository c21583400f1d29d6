package trackingrepo

import (
	"context"

	"zapshift/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// GormTrackingRepository implements ports.TrackingRepository. Rows are never
// updated or deleted.
type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

func (r *GormTrackingRepository) Append(ctx context.Context, event *tracking.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}
