package queries

import (
	"context"

	"zapshift/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

type GetRiderDeliveriesPerDayQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderDeliveriesPerDayQueryHandler(db *gorm.DB) GetRiderDeliveriesPerDayQueryHandler {
	return GetRiderDeliveriesPerDayQueryHandler{db: db}
}

// Handle joins the rider's parcels to the ledger on tracking ID. Days without a
// delivery are omitted; results are in date order.
func (h GetRiderDeliveriesPerDayQueryHandler) Handle(
	ctx context.Context,
	query GetRiderDeliveriesPerDayQuery,
) ([]DeliveriesPerDay, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT to_char(t.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM parcels p
		JOIN tracking_events t ON t.tracking_id = p.tracking_id
		WHERE p.rider_email = ? AND t.status = ?
		GROUP BY day
		ORDER BY day
	`, query.RiderEmail().String(), parcel.StatusDelivered.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]DeliveriesPerDay, 0)
	for rows.Next() {
		var d DeliveriesPerDay
		if err = rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}
