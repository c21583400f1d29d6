package paymentrepo

import (
	"context"
	"errors"
	"strings"

	"zapshift/internal/adapters/out/postgres/pgerrs"
	"zapshift/internal/core/domain/model/payment"
	"zapshift/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add inserts a payment. A second row for the same transaction ID is refused by the
// unique index and reported as errs.ErrConflict.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("transactionId", dto.TransactionID, err)
		}
		return err
	}

	return nil
}

func (r *GormPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, errs.NewValueIsRequiredError("transactionId")
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).Take(&dto, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", transactionID)
		}
		return nil, err
	}

	return toDomain(dto)
}
