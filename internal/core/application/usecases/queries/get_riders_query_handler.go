package queries

import (
	"context"
	"strings"

	"zapshift/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRidersQueryHandler struct {
	db *gorm.DB
}

func NewGetRidersQueryHandler(db *gorm.DB) GetRidersQueryHandler {
	return GetRidersQueryHandler{db: db}
}

func (h GetRidersQueryHandler) Handle(ctx context.Context, query GetRidersQuery) ([]RiderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	var (
		where []string
		args  []any
	)
	for _, f := range []struct{ column, value string }{
		{"status", filter.Status},
		{"district", filter.District},
		{"work_status", filter.WorkStatus},
	} {
		if f.value != "" {
			where = append(where, f.column+" = ?")
			args = append(args, f.value)
		}
	}

	stmt := `SELECT id, name, email, phone, region, district, status, work_status, created_at FROM riders`
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]RiderResponse, 0)
	for rows.Next() {
		var (
			r  RiderResponse
			id uuid.UUID
		)
		if err = rows.Scan(
			&id, &r.Name, &r.Email, &r.Phone, &r.Region, &r.District, &r.Status, &r.WorkStatus, &r.CreatedAt,
		); err != nil {
			return nil, err
		}

		if r.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		r.CreatedAt = r.CreatedAt.UTC()
		riders = append(riders, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}
