package queries

import (
	"errors"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPaymentsQueryIsNotConstructed = errors.New(
	"GetPaymentsQuery must be created via NewGetPaymentsQuery constructor",
)

// Requester is the authenticated caller of a read that is scoped by ownership.
type Requester struct {
	Email   kernel.Email
	IsAdmin bool
}

// GetPaymentsQuery lists payment history, newest first. A customer may only read
// their own payments; listing everyone's (no e-mail) or another customer's history
// needs the admin role.
type GetPaymentsQuery struct {
	customerEmail string
	guard         guard.ConstructorGuard
}

// NewGetPaymentsQuery returns errs.ErrForbidden when requester may not read the
// requested history.
func NewGetPaymentsQuery(customerEmail string, requester Requester) (GetPaymentsQuery, error) {
	q := GetPaymentsQuery{guard: guard.NewConstructorGuard()}

	if strings.TrimSpace(customerEmail) == "" {
		if !requester.IsAdmin {
			return GetPaymentsQuery{}, errs.ErrForbidden
		}
		return q, nil
	}

	email, err := kernel.NewEmail(customerEmail)
	if err != nil {
		return GetPaymentsQuery{}, err
	}
	if !requester.IsAdmin && !email.IsEqual(requester.Email) {
		return GetPaymentsQuery{}, errs.ErrForbidden
	}

	q.customerEmail = email.String()
	return q, nil
}

func (q GetPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentsQueryIsNotConstructed)
}

// CustomerEmail is empty when every payment is requested.
func (q GetPaymentsQuery) CustomerEmail() string {
	return q.customerEmail
}

type PaymentResponse struct {
	ID            kernel.UUID
	TransactionID string
	ParcelID      kernel.UUID
	TrackingID    string
	ParcelName    string
	CustomerEmail string
	Amount        decimal.Decimal
	Currency      string
	PaymentStatus string
	PaidAt        time.Time
}
