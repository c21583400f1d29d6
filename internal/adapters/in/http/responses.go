package http

import (
	"time"

	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

type ParcelResponse struct {
	ID               string          `json:"id"`
	TrackingID       string          `json:"trackingId"`
	ParcelName       string          `json:"parcelName"`
	ParcelType       string          `json:"parcelType"`
	ParcelWeight     decimal.Decimal `json:"parcelWeight"`
	Cost             decimal.Decimal `json:"cost"`
	Currency         string          `json:"currency"`
	SenderName       string          `json:"senderName"`
	SenderEmail      string          `json:"senderEmail"`
	SenderPhone      string          `json:"senderPhone"`
	SenderRegion     string          `json:"senderRegion"`
	SenderDistrict   string          `json:"senderDistrict"`
	SenderAddress    string          `json:"senderAddress"`
	ReceiverName     string          `json:"receiverName"`
	ReceiverPhone    string          `json:"receiverPhone"`
	ReceiverRegion   string          `json:"receiverRegion"`
	ReceiverDistrict string          `json:"receiverDistrict"`
	ReceiverAddress  string          `json:"receiverAddress"`
	DeliveryStatus   string          `json:"deliveryStatus"`
	PaymentStatus    string          `json:"paymentStatus"`
	RiderID          string          `json:"riderId,omitempty"`
	RiderName        string          `json:"riderName,omitempty"`
	RiderEmail       string          `json:"riderEmail,omitempty"`
	RiderPhone       string          `json:"riderPhone,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func parcelFromDomain(p *parcel.Parcel) ParcelResponse {
	d, s, r := p.Details(), p.Sender(), p.Receiver()
	resp := ParcelResponse{
		ID:               p.ID().String(),
		TrackingID:       p.TrackingID().String(),
		ParcelName:       d.Name,
		ParcelType:       string(d.Kind),
		ParcelWeight:     d.Weight,
		Cost:             d.Cost.Amount(),
		Currency:         d.Cost.Currency(),
		SenderName:       s.Name,
		SenderEmail:      s.Email.String(),
		SenderPhone:      s.Phone,
		SenderRegion:     s.Region,
		SenderDistrict:   s.District,
		SenderAddress:    s.Address,
		ReceiverName:     r.Name,
		ReceiverPhone:    r.Phone,
		ReceiverRegion:   r.Region,
		ReceiverDistrict: r.District,
		ReceiverAddress:  r.Address,
		DeliveryStatus:   p.DeliveryStatus().String(),
		PaymentStatus:    p.PaymentStatus().String(),
		CreatedAt:        p.CreatedAt(),
	}
	if assigned := p.Rider(); assigned != nil {
		resp.RiderID = assigned.ID.String()
		resp.RiderName = assigned.Name
		resp.RiderEmail = assigned.Email.String()
		resp.RiderPhone = assigned.Phone
	}
	return resp
}

func parcelFromQuery(p queries.ParcelResponse) ParcelResponse {
	resp := ParcelResponse{
		ID:               p.ID.String(),
		TrackingID:       p.TrackingID,
		ParcelName:       p.Name,
		ParcelType:       p.Kind,
		ParcelWeight:     p.Weight,
		Cost:             p.Cost,
		Currency:         p.Currency,
		SenderName:       p.Sender.Name,
		SenderEmail:      p.Sender.Email,
		SenderPhone:      p.Sender.Phone,
		SenderRegion:     p.Sender.Region,
		SenderDistrict:   p.Sender.District,
		SenderAddress:    p.Sender.Address,
		ReceiverName:     p.Receiver.Name,
		ReceiverPhone:    p.Receiver.Phone,
		ReceiverRegion:   p.Receiver.Region,
		ReceiverDistrict: p.Receiver.District,
		ReceiverAddress:  p.Receiver.Address,
		DeliveryStatus:   p.DeliveryStatus,
		PaymentStatus:    p.PaymentStatus,
		CreatedAt:        p.CreatedAt,
	}
	if p.Rider != nil {
		resp.RiderID = p.Rider.ID.String()
		resp.RiderName = p.Rider.Name
		resp.RiderEmail = p.Rider.Email
		resp.RiderPhone = p.Rider.Phone
	}
	return resp
}

func parcelsFromQuery(list []queries.ParcelResponse) []ParcelResponse {
	out := make([]ParcelResponse, len(list))
	for i, p := range list {
		out[i] = parcelFromQuery(p)
	}
	return out
}

type RiderResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Region     string    `json:"region"`
	District   string    `json:"district"`
	Status     string    `json:"status"`
	WorkStatus string    `json:"workStatus"`
	CreatedAt  time.Time `json:"createdAt"`
}

func riderFromDomain(r *rider.Rider) RiderResponse {
	profile := r.Profile()
	return RiderResponse{
		ID:         r.ID().String(),
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

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func userFromDomain(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID().String(),
		Name:      u.Name(),
		Email:     u.Email().String(),
		PhotoURL:  u.PhotoURL(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}

type TrackingEventResponse struct {
	ID         string    `json:"id"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

func trackingEventFromDomain(e *tracking.Event) TrackingEventResponse {
	return TrackingEventResponse{
		ID:         e.ID().String(),
		TrackingID: e.TrackingID().String(),
		Status:     e.Status(),
		Details:    e.Details(),
		CreatedAt:  e.CreatedAt(),
	}
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	ParcelID      string          `json:"parcelId"`
	TrackingID    string          `json:"trackingId"`
	ParcelName    string          `json:"parcelName"`
	CustomerEmail string          `json:"customerEmail"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentStatus string          `json:"paymentStatus"`
	PaidAt        time.Time       `json:"paidAt"`
}

type ReconcileResponse struct {
	Outcome       string `json:"outcome"`
	TransactionID string `json:"transactionId,omitempty"`
	TrackingID    string `json:"trackingId,omitempty"`
	PaymentStatus string `json:"paymentStatus"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
