package queries

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown parcel.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	row := h.db.WithContext(ctx).
		Raw("SELECT "+parcelColumns+" FROM parcels WHERE id = ?", query.ParcelID().Bytes()).
		Row()

	p, err := scanParcel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ParcelResponse{}, errs.NewObjectNotFoundError("parcel", query.ParcelID().String())
	}
	if err != nil {
		return ParcelResponse{}, err
	}

	return p, nil
}
