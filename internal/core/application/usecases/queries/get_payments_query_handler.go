package queries

import (
	"context"

	"zapshift/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewGetPaymentsQueryHandler(db *gorm.DB) GetPaymentsQueryHandler {
	return GetPaymentsQueryHandler{db: db}
}

func (h GetPaymentsQueryHandler) Handle(ctx context.Context, query GetPaymentsQuery) ([]PaymentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// An empty e-mail disables the filter.
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, transaction_id, parcel_id, tracking_id, parcel_name, customer_email,
			amount, currency, payment_status, paid_at
		FROM payments
		WHERE (? = '' OR customer_email = ?)
		ORDER BY paid_at DESC, id
	`, query.CustomerEmail(), query.CustomerEmail()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentResponse, 0)
	for rows.Next() {
		var (
			p        PaymentResponse
			id       uuid.UUID
			parcelID uuid.UUID
		)
		if err = rows.Scan(
			&id, &p.TransactionID, &parcelID, &p.TrackingID, &p.ParcelName, &p.CustomerEmail,
			&p.Amount, &p.Currency, &p.PaymentStatus, &p.PaidAt,
		); err != nil {
			return nil, err
		}

		if p.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if p.ParcelID, err = kernel.UUIDFromBytes(parcelID[:]); err != nil {
			return nil, err
		}
		p.PaidAt = p.PaidAt.UTC()
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
