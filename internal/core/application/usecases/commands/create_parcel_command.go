package commands

import (
	"errors"

	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand carries a parcel booked by a sender. Field level rules
// (required names, kind, non-negative weight) are enforced by the parcel aggregate,
// so the constructor only wraps the data.
//
// Example:
//
//	cmd := NewCreateParcelCommand(details, sender, receiver)
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("booked", p.TrackingID())
type CreateParcelCommand struct {
	details  parcel.Details
	sender   parcel.Sender
	receiver parcel.Receiver

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(
	details parcel.Details,
	sender parcel.Sender,
	receiver parcel.Receiver,
) CreateParcelCommand {
	return CreateParcelCommand{
		details:  details,
		sender:   sender,
		receiver: receiver,
		guard:    guard.NewConstructorGuard(),
	}
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}

func (c CreateParcelCommand) Sender() parcel.Sender {
	return c.sender
}

func (c CreateParcelCommand) Receiver() parcel.Receiver {
	return c.receiver
}
