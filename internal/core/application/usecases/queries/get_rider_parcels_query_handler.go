package queries

import (
	"context"

	"zapshift/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

type GetRiderParcelsQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderParcelsQueryHandler(db *gorm.DB) GetRiderParcelsQueryHandler {
	return GetRiderParcelsQueryHandler{db: db}
}

func (h GetRiderParcelsQueryHandler) Handle(ctx context.Context, query GetRiderParcelsQuery) ([]ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statusFilter := "delivery_status <> ?"
	if query.Delivered() {
		statusFilter = "delivery_status = ?"
	}

	rows, err := h.db.WithContext(ctx).Raw(
		"SELECT "+parcelColumns+" FROM parcels WHERE rider_email = ? AND "+statusFilter+
			" ORDER BY created_at DESC, id",
		query.RiderEmail().String(), parcel.StatusDelivered.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]ParcelResponse, 0)
	for rows.Next() {
		p, scanErr := scanParcel(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		parcels = append(parcels, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
