package ports

import (
	"context"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/tracking"
)

// GatewayPaymentStatus is the gateway's verdict on a checkout session.
type GatewayPaymentStatus string

const (
	GatewayPaid   GatewayPaymentStatus = "paid"
	GatewayUnpaid GatewayPaymentStatus = "unpaid"
	// GatewayNoPaymentRequired is reported for zero-amount sessions.
	GatewayNoPaymentRequired GatewayPaymentStatus = "no_payment_required"
)

// CheckoutSession is what the gateway confirms about a checkout.
type CheckoutSession struct {
	Reference     string
	TransactionID string
	PaymentStatus GatewayPaymentStatus
	// AmountMinor is in the currency's minor unit (cents).
	AmountMinor   int64
	Currency      string
	ParcelID      string
	ParcelName    string
	TrackingID    string
	CustomerEmail string
}

func (s CheckoutSession) IsPaid() bool {
	return s.PaymentStatus == GatewayPaid
}

// CheckoutRequest asks the gateway for a hosted payment page.
type CheckoutRequest struct {
	ParcelID      kernel.UUID
	ParcelName    string
	TrackingID    tracking.ID
	CustomerEmail kernel.Email
	Amount        kernel.Money
}

type CheckoutLink struct {
	Reference string
	URL       string
}

// PaymentGateway is the external payment collaborator. Transport failures and
// timeouts are reported as errs.ErrUpstreamUnavailable; unknown sessions as
// errs.ErrObjectNotFound.
type PaymentGateway interface {
	RetrieveSession(ctx context.Context, reference string) (CheckoutSession, error)
	CreateCheckoutSession(ctx context.Context, request CheckoutRequest) (CheckoutLink, error)
}
