package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetDeliveryStatusStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryStatusStatsQueryHandler(db *gorm.DB) GetDeliveryStatusStatsQueryHandler {
	return GetDeliveryStatusStatsQueryHandler{db: db}
}

// Handle returns one entry per status present, ordered by status label.
func (h GetDeliveryStatusStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatusStatsQuery,
) ([]DeliveryStatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT delivery_status, COUNT(*)
		FROM parcels
		GROUP BY delivery_status
		ORDER BY delivery_status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]DeliveryStatusCount, 0)
	for rows.Next() {
		var s DeliveryStatusCount
		if err = rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
