package services

import (
	"errors"
	"strings"

	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/rider"
)

// ErrRiderNotFound is returned when no candidate can take the parcel.
var ErrRiderNotFound = errors.New("no available rider found")

// RiderDispatcher picks the rider that should collect a parcel waiting for pickup.
//
// Selection rules:
//   - the rider must be approved and available
//   - the rider must work the sender's district (case-insensitive)
//   - among candidates the longest-registered rider wins, so new riders do not
//     starve veterans of work
//
// The dispatcher only chooses; the assignment itself goes through the parcel state
// machine so it is logged and stored like a manual one.
type RiderDispatcher struct{}

func NewRiderDispatcher() RiderDispatcher {
	return RiderDispatcher{}
}

// Select returns the chosen rider or ErrRiderNotFound.
func (d RiderDispatcher) Select(p *parcel.Parcel, riders []*rider.Rider) (*rider.Rider, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	district := strings.TrimSpace(p.Sender().District)

	var best *rider.Rider
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if !r.IsAvailable() || !strings.EqualFold(r.District(), district) {
			continue
		}
		if best == nil || r.CreatedAt().Before(best.CreatedAt()) {
			best = r
		}
	}

	if best == nil {
		return nil, ErrRiderNotFound
	}
	return best, nil
}
