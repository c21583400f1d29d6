package queries

import (
	"errors"

	"zapshift/internal/pkg/guard"
)

var ErrGetDeliveryStatusStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatusStatsQuery must be created via NewGetDeliveryStatusStatsQuery constructor",
)

// GetDeliveryStatusStatsQuery counts parcels per delivery status for the admin
// dashboard.
type GetDeliveryStatusStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDeliveryStatusStatsQuery() GetDeliveryStatusStatsQuery {
	return GetDeliveryStatusStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDeliveryStatusStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatusStatsQueryIsNotConstructed)
}

type DeliveryStatusCount struct {
	Status string
	Count  int64
}
