// Package queries holds the read side: raw SQL over the tables written by the
// postgres repositories, returned as flat response structs. Queries never lock
// rows and never go through the unit of work.
package queries

import (
	"time"

	"zapshift/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// parcelColumns matches scanParcel.
const parcelColumns = `
	id, tracking_id, name, kind, weight, cost, currency,
	sender_name, sender_email, sender_phone, sender_region, sender_district, sender_address,
	receiver_name, receiver_phone, receiver_region, receiver_district, receiver_address,
	delivery_status, payment_status,
	rider_id, COALESCE(rider_name, ''), COALESCE(rider_email, ''), COALESCE(rider_phone, ''),
	created_at`

// ParcelResponse is the read model of a parcel.
type ParcelResponse struct {
	ID             kernel.UUID
	TrackingID     string
	Name           string
	Kind           string
	Weight         decimal.Decimal
	Cost           decimal.Decimal
	Currency       string
	Sender         SenderResponse
	Receiver       ReceiverResponse
	DeliveryStatus string
	PaymentStatus  string
	// Rider is nil until a rider is assigned.
	Rider     *AssignedRiderResponse
	CreatedAt time.Time
}

type SenderResponse struct {
	Name     string
	Email    string
	Phone    string
	Region   string
	District string
	Address  string
}

type ReceiverResponse struct {
	Name     string
	Phone    string
	Region   string
	District string
	Address  string
}

type AssignedRiderResponse struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParcel(row rowScanner) (ParcelResponse, error) {
	var (
		resp    ParcelResponse
		id      uuid.UUID
		riderID uuid.NullUUID
		rider   AssignedRiderResponse
	)

	if err := row.Scan(
		&id, &resp.TrackingID, &resp.Name, &resp.Kind, &resp.Weight, &resp.Cost, &resp.Currency,
		&resp.Sender.Name, &resp.Sender.Email, &resp.Sender.Phone,
		&resp.Sender.Region, &resp.Sender.District, &resp.Sender.Address,
		&resp.Receiver.Name, &resp.Receiver.Phone,
		&resp.Receiver.Region, &resp.Receiver.District, &resp.Receiver.Address,
		&resp.DeliveryStatus, &resp.PaymentStatus,
		&riderID, &rider.Name, &rider.Email, &rider.Phone,
		&resp.CreatedAt,
	); err != nil {
		return ParcelResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ParcelResponse{}, err
	}
	resp.ID = parcelID
	resp.CreatedAt = resp.CreatedAt.UTC()

	if riderID.Valid {
		rider.ID, err = kernel.UUIDFromBytes(riderID.UUID[:])
		if err != nil {
			return ParcelResponse{}, err
		}
		resp.Rider = &rider
	}

	return resp, nil
}
