// Package parcelrepo persists parcel aggregates in the parcels table.
package parcelrepo

import (
	"fmt"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is the row layout of a parcel. The assigned rider is flattened into
// nullable rider_* columns; a NULL rider_id means no rider.
type ParcelDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingID     string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(255);not null"`
	Kind           string          `gorm:"type:varchar(32);not null"`
	Weight         decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Cost           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	Sender         SenderDTO       `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver       ReceiverDTO     `gorm:"embedded;embeddedPrefix:receiver_"`
	DeliveryStatus string          `gorm:"type:varchar(64);not null;index"`
	PaymentStatus  string          `gorm:"type:varchar(16);not null"`
	RiderID        *uuid.UUID      `gorm:"type:uuid;index"`
	RiderName      string          `gorm:"type:varchar(255)"`
	RiderEmail     string          `gorm:"type:varchar(255);index"`
	RiderPhone     string          `gorm:"type:varchar(32)"`
	CreatedAt      time.Time       `gorm:"not null;index"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

type SenderDTO struct {
	Name     string `gorm:"type:varchar(255);not null"`
	Email    string `gorm:"type:varchar(255);not null;index"`
	Phone    string `gorm:"type:varchar(32)"`
	Region   string `gorm:"type:varchar(128)"`
	District string `gorm:"type:varchar(128);index"`
	Address  string `gorm:"type:text"`
}

type ReceiverDTO struct {
	Name     string `gorm:"type:varchar(255);not null"`
	Phone    string `gorm:"type:varchar(32)"`
	Region   string `gorm:"type:varchar(128)"`
	District string `gorm:"type:varchar(128)"`
	Address  string `gorm:"type:text"`
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	details := p.Details()
	sender := p.Sender()
	receiver := p.Receiver()

	dto := ParcelDTO{
		ID:         p.ID().Bytes(),
		TrackingID: p.TrackingID().String(),
		Name:       details.Name,
		Kind:       string(details.Kind),
		Weight:     details.Weight,
		Cost:       details.Cost.Amount(),
		Currency:   details.Cost.Currency(),
		Sender: SenderDTO{
			Name:     sender.Name,
			Email:    sender.Email.String(),
			Phone:    sender.Phone,
			Region:   sender.Region,
			District: sender.District,
			Address:  sender.Address,
		},
		Receiver: ReceiverDTO{
			Name:     receiver.Name,
			Phone:    receiver.Phone,
			Region:   receiver.Region,
			District: receiver.District,
			Address:  receiver.Address,
		},
		DeliveryStatus: p.DeliveryStatus().String(),
		PaymentStatus:  p.PaymentStatus().String(),
		CreatedAt:      p.CreatedAt(),
	}

	if r := p.Rider(); r != nil {
		riderID := r.ID.Bytes()
		dto.RiderID = &riderID
		dto.RiderName = r.Name
		dto.RiderEmail = r.Email.String()
		dto.RiderPhone = r.Phone
	}

	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := tracking.ParseID(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	cost, err := kernel.NewMoney(dto.Cost, dto.Currency)
	if err != nil {
		return nil, err
	}

	senderEmail, err := kernel.NewEmail(dto.Sender.Email)
	if err != nil {
		return nil, err
	}

	assigned, err := riderToDomain(dto)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		trackingID,
		parcel.Details{
			Name:   dto.Name,
			Kind:   parcel.Kind(dto.Kind),
			Weight: dto.Weight,
			Cost:   cost,
		},
		parcel.Sender{
			Name:     dto.Sender.Name,
			Email:    senderEmail,
			Phone:    dto.Sender.Phone,
			Region:   dto.Sender.Region,
			District: dto.Sender.District,
			Address:  dto.Sender.Address,
		},
		parcel.Receiver{
			Name:     dto.Receiver.Name,
			Phone:    dto.Receiver.Phone,
			Region:   dto.Receiver.Region,
			District: dto.Receiver.District,
			Address:  dto.Receiver.Address,
		},
		parcel.Status(dto.DeliveryStatus),
		parcel.PaymentStatus(dto.PaymentStatus),
		assigned,
		dto.CreatedAt.UTC(),
	), nil
}

func riderToDomain(dto ParcelDTO) (*parcel.AssignedRider, error) {
	if dto.RiderID == nil {
		return nil, nil //nolint:nilnil // parcel has no rider
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.RiderEmail)
	if err != nil {
		return nil, fmt.Errorf("assigned rider: %w", err)
	}

	return &parcel.AssignedRider{
		ID:    riderID,
		Name:  dto.RiderName,
		Email: email,
		Phone: dto.RiderPhone,
	}, nil
}
