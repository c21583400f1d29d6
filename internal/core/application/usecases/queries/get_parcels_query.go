package queries

import (
	"errors"
	"strings"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/guard"
)

var ErrGetParcelsQueryIsNotConstructed = errors.New(
	"GetParcelsQuery must be created via NewGetParcelsQuery constructor",
)

// GetParcelsQuery lists parcels, newest first. Both filters are optional: an empty
// sender e-mail or delivery status matches everything.
type GetParcelsQuery struct {
	senderEmail    string
	deliveryStatus string
	guard          guard.ConstructorGuard
}

func NewGetParcelsQuery(senderEmail, deliveryStatus string) (GetParcelsQuery, error) {
	q := GetParcelsQuery{guard: guard.NewConstructorGuard()}

	if strings.TrimSpace(senderEmail) != "" {
		email, err := kernel.NewEmail(senderEmail)
		if err != nil {
			return GetParcelsQuery{}, err
		}
		q.senderEmail = email.String()
	}

	if strings.TrimSpace(deliveryStatus) != "" {
		status, err := parcel.NewStatus(deliveryStatus)
		if err != nil {
			return GetParcelsQuery{}, err
		}
		q.deliveryStatus = status.String()
	}

	return q, nil
}

func (q GetParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelsQueryIsNotConstructed)
}

func (q GetParcelsQuery) SenderEmail() string {
	return q.senderEmail
}

func (q GetParcelsQuery) DeliveryStatus() string {
	return q.deliveryStatus
}
