package queries

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/guard"
)

var ErrGetRiderDeliveriesPerDayQueryIsNotConstructed = errors.New(
	"GetRiderDeliveriesPerDayQuery must be created via NewGetRiderDeliveriesPerDayQuery constructor",
)

// GetRiderDeliveriesPerDayQuery counts a rider's deliveries per UTC calendar day,
// using the delivered entries of the tracking ledger of the rider's parcels.
type GetRiderDeliveriesPerDayQuery struct {
	riderEmail kernel.Email
	guard      guard.ConstructorGuard
}

func NewGetRiderDeliveriesPerDayQuery(riderEmail string) (GetRiderDeliveriesPerDayQuery, error) {
	email, err := kernel.NewEmail(riderEmail)
	if err != nil {
		return GetRiderDeliveriesPerDayQuery{}, err
	}
	return GetRiderDeliveriesPerDayQuery{riderEmail: email, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRiderDeliveriesPerDayQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderDeliveriesPerDayQueryIsNotConstructed)
}

func (q GetRiderDeliveriesPerDayQuery) RiderEmail() kernel.Email {
	return q.riderEmail
}

// DeliveriesPerDay is one day of a rider's history. Date is formatted YYYY-MM-DD.
type DeliveriesPerDay struct {
	Date  string
	Count int64
}
