package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type GetParcelsQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelsQueryHandler(db *gorm.DB) GetParcelsQueryHandler {
	return GetParcelsQueryHandler{db: db}
}

func (h GetParcelsQueryHandler) Handle(ctx context.Context, query GetParcelsQuery) ([]ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.SenderEmail() != "" {
		where = append(where, "sender_email = ?")
		args = append(args, query.SenderEmail())
	}
	if query.DeliveryStatus() != "" {
		where = append(where, "delivery_status = ?")
		args = append(args, query.DeliveryStatus())
	}

	stmt := "SELECT " + parcelColumns + " FROM parcels"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
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
