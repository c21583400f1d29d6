package parcelrepo

import (
	"context"
	"errors"
	"strings"

	"zapshift/internal/adapters/out/postgres/pgerrs"
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Add inserts a new parcel. A duplicate tracking ID is reported as a conflict.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("trackingId", dto.TrackingID, err)
		}
		return err
	}

	return nil
}

// Update writes every mutable column, including a cleared rider. The tracking ID
// and creation time are never rewritten.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "tracking_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	return nil
}

// Get loads a parcel with SELECT ... FOR UPDATE.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) ExistsByTrackingID(ctx context.Context, id tracking.ID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("tracking_id = ?", id.String()).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetFirstAwaitingPickup returns the oldest paid, unassigned parcel in pending-pickup
// sent from one of districts. Rows already locked by another dispatcher are skipped.
func (r *GormParcelRepository) GetFirstAwaitingPickup(ctx context.Context, districts []string) (*parcel.Parcel, error) {
	if len(districts) == 0 {
		return nil, errs.NewObjectNotFoundError("parcel", "first awaiting pickup")
	}

	lowered := make([]string, 0, len(districts))
	for _, d := range districts {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(d)))
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{
			Strength: "UPDATE",
			Options:  "SKIP LOCKED",
		}).
		Where("delivery_status = ? AND payment_status = ? AND rider_id IS NULL",
			parcel.StatusPendingPickup.String(), parcel.PaymentPaid.String()).
		Where("LOWER(sender_district) IN ?", lowered).
		Order("created_at").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", "first awaiting pickup")
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) HasOpenForRider(ctx context.Context, riderID kernel.UUID) (bool, error) {
	if err := riderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("rider_id = ? AND delivery_status <> ?", riderID.Bytes(), parcel.StatusDelivered.String()).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}

	return nil
}
