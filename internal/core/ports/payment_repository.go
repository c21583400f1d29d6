package ports

import (
	"context"

	"zapshift/internal/core/domain/model/payment"
)

// PaymentRepository stores confirmed payments. The transaction ID is unique.
type PaymentRepository interface {
	// Add inserts a payment. A second payment with the same transaction ID yields
	// errs.ErrConflict and leaves the store unchanged.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// GetByTransactionID returns errs.ErrObjectNotFound when nothing was recorded yet.
	GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error)
}
