package queries

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/guard"
)

var ErrGetRiderParcelsQueryIsNotConstructed = errors.New(
	"GetRiderParcelsQuery must be created via NewGetRiderParcelsQuery constructor",
)

// GetRiderParcelsQuery lists the parcels carried by one rider. Asking for the
// delivered status lists finished deliveries; any other (or no) status lists the
// rider's open work, i.e. everything not yet delivered.
type GetRiderParcelsQuery struct {
	riderEmail kernel.Email
	delivered  bool
	guard      guard.ConstructorGuard
}

func NewGetRiderParcelsQuery(riderEmail, deliveryStatus string) (GetRiderParcelsQuery, error) {
	email, err := kernel.NewEmail(riderEmail)
	if err != nil {
		return GetRiderParcelsQuery{}, err
	}
	return GetRiderParcelsQuery{
		riderEmail: email,
		delivered:  parcel.Status(deliveryStatus) == parcel.StatusDelivered,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetRiderParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderParcelsQueryIsNotConstructed)
}

func (q GetRiderParcelsQuery) RiderEmail() kernel.Email {
	return q.riderEmail
}

func (q GetRiderParcelsQuery) Delivered() bool {
	return q.delivered
}
