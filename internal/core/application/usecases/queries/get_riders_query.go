package queries

import (
	"errors"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/pkg/guard"
)

var ErrGetRidersQueryIsNotConstructed = errors.New(
	"GetRidersQuery must be created via NewGetRidersQuery constructor",
)

// RiderFilter narrows GetRidersQuery. Empty fields match every rider.
type RiderFilter struct {
	Status     string
	District   string
	WorkStatus string
}

// GetRidersQuery lists rider applications, newest first.
//
// Example:
//
//	query, err := NewGetRidersQuery(RiderFilter{Status: "approved", District: "Dhaka"})
//	if err != nil {
//	    return err
//	}
//	riders, err := handler.Handle(ctx, query)
type GetRidersQuery struct {
	filter RiderFilter
	guard  guard.ConstructorGuard
}

func NewGetRidersQuery(filter RiderFilter) (GetRidersQuery, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	filter.District = strings.TrimSpace(filter.District)
	filter.WorkStatus = strings.TrimSpace(filter.WorkStatus)

	var errList []error
	if filter.Status != "" {
		_, err := rider.ParseApprovalStatus(filter.Status)
		errList = append(errList, err)
	}
	if filter.WorkStatus != "" {
		_, err := rider.ParseWorkStatus(filter.WorkStatus)
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return GetRidersQuery{}, err
	}

	return GetRidersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetRidersQueryIsNotConstructed)
}

func (q GetRidersQuery) Filter() RiderFilter {
	return q.filter
}

type RiderResponse struct {
	ID         kernel.UUID
	Name       string
	Email      string
	Phone      string
	Region     string
	District   string
	Status     string
	WorkStatus string
	CreatedAt  time.Time
}
