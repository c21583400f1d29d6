// Package paymentrepo stores confirmed payments. The unique index on
// transaction_id is what makes reconciliation idempotent under races.
package paymentrepo

import (
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/payment"
	"zapshift/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	ParcelID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TrackingID    string          `gorm:"type:varchar(32);not null"`
	ParcelName    string          `gorm:"type:varchar(255)"`
	CustomerEmail string          `gorm:"type:varchar(255);not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	PaymentStatus string          `gorm:"type:varchar(16);not null"`
	PaidAt        time.Time       `gorm:"not null;index"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID().Bytes(),
		TransactionID: p.TransactionID(),
		ParcelID:      p.ParcelID().Bytes(),
		TrackingID:    p.TrackingID().String(),
		ParcelName:    p.ParcelName(),
		CustomerEmail: p.CustomerEmail().String(),
		Amount:        p.Amount().Amount(),
		Currency:      p.Amount().Currency(),
		PaymentStatus: p.Status(),
		PaidAt:        p.PaidAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := tracking.ParseID(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.CustomerEmail)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		payment.Receipt{
			TransactionID: dto.TransactionID,
			ParcelID:      parcelID,
			TrackingID:    trackingID,
			ParcelName:    dto.ParcelName,
			CustomerEmail: email,
			Amount:        amount,
		},
		dto.PaymentStatus,
		dto.PaidAt.UTC(),
	), nil
}
