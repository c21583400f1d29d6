// Package payment models the immutable record of a confirmed gateway charge.
// A payment is unique on the gateway transaction ID, which is how duplicate
// confirmations are recognised.
package payment

import (
	"errors"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/pkg/errs"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment constructor")

// StatusPaid is the only gateway status for which a payment is recorded.
const StatusPaid = "paid"

type Payment struct {
	id            kernel.UUID
	transactionID string
	parcelID      kernel.UUID
	trackingID    tracking.ID
	parcelName    string
	customerEmail kernel.Email
	amount        kernel.Money
	status        string
	paidAt        time.Time
	isConstructed bool
}

// Receipt carries the gateway confirmation a payment is built from.
type Receipt struct {
	TransactionID string
	ParcelID      kernel.UUID
	TrackingID    tracking.ID
	ParcelName    string
	CustomerEmail kernel.Email
	Amount        kernel.Money
}

func NewPayment(id kernel.UUID, receipt Receipt, paidAt time.Time) (*Payment, error) {
	p := &Payment{
		id:            id,
		transactionID: strings.TrimSpace(receipt.TransactionID),
		parcelID:      receipt.ParcelID,
		trackingID:    receipt.TrackingID,
		parcelName:    receipt.ParcelName,
		customerEmail: receipt.CustomerEmail,
		amount:        receipt.Amount,
		status:        StatusPaid,
		paidAt:        paidAt.UTC(),
		isConstructed: true,
	}

	var errList []error
	if p.transactionID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("transactionId"))
	}
	errList = append(errList,
		id.Validate(),
		receipt.ParcelID.Validate(),
		receipt.TrackingID.Validate(),
		receipt.CustomerEmail.Validate(),
		receipt.Amount.Validate(),
	)
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return p, nil
}

func RestorePayment(id kernel.UUID, receipt Receipt, status string, paidAt time.Time) *Payment {
	return &Payment{
		id:            id,
		transactionID: receipt.TransactionID,
		parcelID:      receipt.ParcelID,
		trackingID:    receipt.TrackingID,
		parcelName:    receipt.ParcelName,
		customerEmail: receipt.CustomerEmail,
		amount:        receipt.Amount,
		status:        status,
		paidAt:        paidAt,
		isConstructed: true,
	}
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) TransactionID() string {
	return p.transactionID
}

func (p *Payment) ParcelID() kernel.UUID {
	return p.parcelID
}

func (p *Payment) TrackingID() tracking.ID {
	return p.trackingID
}

func (p *Payment) ParcelName() string {
	return p.parcelName
}

func (p *Payment) CustomerEmail() kernel.Email {
	return p.customerEmail
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) Status() string {
	return p.status
}

func (p *Payment) PaidAt() time.Time {
	return p.paidAt
}
