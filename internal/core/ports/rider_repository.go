package ports

import (
	"context"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/rider"
)

// RiderRepository persists rider aggregates.
type RiderRepository interface {
	// Add stores a new application. One application per e-mail, else errs.ErrConflict.
	Add(ctx context.Context, aggregate *rider.Rider) error

	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get loads and locks a rider, or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllAvailableInDistrict lists approved, available riders of a district.
	// Districts compare case-insensitively.
	GetAllAvailableInDistrict(ctx context.Context, district string) ([]*rider.Rider, error)

	// GetAvailableDistricts lists the districts with at least one approved, available rider.
	GetAvailableDistricts(ctx context.Context) ([]string, error)

	Delete(ctx context.Context, id kernel.UUID) error
}
