// Package riderrepo persists rider aggregates in the riders table.
package riderrepo

import (
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is the row layout of a rider. One application per e-mail.
type RiderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone      string    `gorm:"type:varchar(32)"`
	Region     string    `gorm:"type:varchar(128)"`
	District   string    `gorm:"type:varchar(128);not null;index"`
	Status     string    `gorm:"type:varchar(16);not null;index"`
	WorkStatus string    `gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	profile := r.Profile()
	return RiderDTO{
		ID:         r.ID().Bytes(),
		Name:       profile.Name,
		Email:      profile.Email.String(),
		Phone:      profile.Phone,
		Region:     profile.Region,
		District:   profile.District,
		Status:     r.Status().String(),
		WorkStatus: r.WorkStatus().String(),
		CreatedAt:  r.CreatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	status, err := rider.ParseApprovalStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	workStatus, err := rider.ParseWorkStatus(dto.WorkStatus)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(
		id,
		rider.Profile{
			Name:     dto.Name,
			Email:    email,
			Phone:    dto.Phone,
			Region:   dto.Region,
			District: dto.District,
		},
		status,
		workStatus,
		dto.CreatedAt.UTC(),
	), nil
}
