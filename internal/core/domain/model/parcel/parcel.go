package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

	// ErrParcelAlreadyPaid is returned when a second payment targets a paid parcel.
	ErrParcelAlreadyPaid = errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus", errors.New("parcel is already paid"))

	// ErrParcelIsDelivered is returned for any change to a delivered parcel.
	ErrParcelIsDelivered = errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus", errors.New("parcel is already delivered"))
)

// Kind distinguishes envelopes from boxed goods. Pricing depends on it upstream.
type Kind string

const (
	KindDocument    Kind = "document"
	KindNonDocument Kind = "non-document"
)

// Details describes what is being shipped.
type Details struct {
	Name   string
	Kind   Kind
	Weight decimal.Decimal
	Cost   kernel.Money
}

type Sender struct {
	Name     string
	Email    kernel.Email
	Phone    string
	Region   string
	District string
	Address  string
}

type Receiver struct {
	Name     string
	Phone    string
	Region   string
	District string
	Address  string
}

// AssignedRider is a copy of the rider's contact data taken at assignment time.
// It is not refreshed when the rider record changes.
type AssignedRider struct {
	ID    kernel.UUID
	Name  string
	Email kernel.Email
	Phone string
}

// Parcel is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - the tracking ID is set once, at construction, and never changes
//   - a new parcel is unpaid with no rider
//   - a delivered parcel accepts no further changes
type Parcel struct {
	id             kernel.UUID
	trackingID     tracking.ID
	details        Details
	sender         Sender
	receiver       Receiver
	deliveryStatus Status
	paymentStatus  PaymentStatus
	rider          *AssignedRider
	createdAt      time.Time
	isConstructed  bool
}

// NewParcel takes a parcel in at the counter.
func NewParcel(
	id kernel.UUID,
	trackingID tracking.ID,
	details Details,
	sender Sender,
	receiver Receiver,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		deliveryStatus: StatusUnpaid,
		paymentStatus:  PaymentUnpaid,
		createdAt:      createdAt.UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		p.setDetails(details),
		p.setSender(sender),
		p.setReceiver(receiver),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from persistence. rider may be nil.
func RestoreParcel(
	id kernel.UUID,
	trackingID tracking.ID,
	details Details,
	sender Sender,
	receiver Receiver,
	deliveryStatus Status,
	paymentStatus PaymentStatus,
	rider *AssignedRider,
	createdAt time.Time,
) *Parcel {
	return &Parcel{
		id:             id,
		trackingID:     trackingID,
		details:        details,
		sender:         sender,
		receiver:       receiver,
		deliveryStatus: deliveryStatus,
		paymentStatus:  paymentStatus,
		rider:          rider,
		createdAt:      createdAt,
		isConstructed:  true,
	}
}

func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingID() tracking.ID {
	return p.trackingID
}

func (p *Parcel) Details() Details {
	return p.details
}

func (p *Parcel) Sender() Sender {
	return p.sender
}

func (p *Parcel) Receiver() Receiver {
	return p.receiver
}

func (p *Parcel) DeliveryStatus() Status {
	return p.deliveryStatus
}

func (p *Parcel) PaymentStatus() PaymentStatus {
	return p.paymentStatus
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// Rider returns the assigned rider snapshot, or nil.
func (p *Parcel) Rider() *AssignedRider {
	if p.rider == nil {
		return nil
	}
	r := *p.rider
	return &r
}

// IsAssignedTo reports whether riderID is the rider currently on the parcel.
func (p *Parcel) IsAssignedTo(riderID kernel.UUID) bool {
	return p.rider != nil && p.rider.ID.IsEqual(riderID)
}

// MarkPaid records a confirmed payment and queues the parcel for pickup.
// trackingID must be the one the gateway echoed back in its metadata.
func (p *Parcel) MarkPaid(trackingID tracking.ID, policy TransitionPolicy) error {
	if !p.trackingID.IsEqual(trackingID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"trackingId",
			fmt.Errorf("payment is for %s, parcel is %s", trackingID, p.trackingID),
		)
	}
	if p.paymentStatus == PaymentPaid {
		return ErrParcelAlreadyPaid
	}
	if err := p.move(StatusPendingPickup, policy); err != nil {
		return err
	}
	p.paymentStatus = PaymentPaid
	return nil
}

// AssignRider puts a rider on the parcel.
func (p *Parcel) AssignRider(r AssignedRider, policy TransitionPolicy) error {
	if err := errors.Join(r.ID.Validate(), r.Email.Validate()); err != nil {
		return err
	}
	if err := p.move(StatusRiderAssigned, policy); err != nil {
		return err
	}
	p.rider = &r
	return nil
}

// UpdateStatus applies a rider reported status. The assigned rider snapshot is kept
// so the parcel stays in that rider's history.
func (p *Parcel) UpdateStatus(newStatus Status, policy TransitionPolicy) error {
	return p.move(newStatus, policy)
}

// RejectAssignment hands the parcel back and drops the rider snapshot.
func (p *Parcel) RejectAssignment(newStatus Status, policy TransitionPolicy) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if p.deliveryStatus.IsTerminal() {
		return ErrParcelIsDelivered
	}
	if err := policy.AllowRejection(p.deliveryStatus, newStatus); err != nil {
		return err
	}
	p.deliveryStatus = newStatus
	p.rider = nil
	return nil
}

func (p *Parcel) move(to Status, policy TransitionPolicy) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if p.deliveryStatus.IsTerminal() {
		return ErrParcelIsDelivered
	}
	if err := policy.Allow(p.deliveryStatus, to); err != nil {
		return err
	}
	p.deliveryStatus = to
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingID(id tracking.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.trackingID = id
	return nil
}

func (p *Parcel) setDetails(d Details) error {
	d.Name = strings.TrimSpace(d.Name)

	var errList []error
	if d.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("parcelName"))
	}
	if d.Kind != KindDocument && d.Kind != KindNonDocument {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"parcelType", fmt.Errorf("%q is neither %q nor %q", d.Kind, KindDocument, KindNonDocument)))
	}
	if d.Weight.IsNegative() {
		errList = append(errList, errs.NewValueIsOutOfRangeError("parcelWeight", d.Weight.String(), 0, "unbounded"))
	}
	if err := d.Cost.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	p.details = d
	return nil
}

func (p *Parcel) setSender(s Sender) error {
	var errList []error
	if strings.TrimSpace(s.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("senderName"))
	}
	if err := s.Email.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(s.District) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("senderDistrict"))
	}
	if strings.TrimSpace(s.Address) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("senderAddress"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	p.sender = s
	return nil
}

func (p *Parcel) setReceiver(r Receiver) error {
	var errList []error
	if strings.TrimSpace(r.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverName"))
	}
	if strings.TrimSpace(r.District) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverDistrict"))
	}
	if strings.TrimSpace(r.Address) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverAddress"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	p.receiver = r
	return nil
}
