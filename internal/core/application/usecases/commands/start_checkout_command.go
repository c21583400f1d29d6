package commands

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/guard"
)

var ErrStartCheckoutCommandIsNotConstructed = errors.New(
	"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
)

// StartCheckoutCommand asks the payment gateway for a hosted payment page for a parcel.
type StartCheckoutCommand struct {
	parcelID      kernel.UUID
	customerEmail kernel.Email

	guard guard.ConstructorGuard
}

func NewStartCheckoutCommand(parcelID kernel.UUID, customerEmail kernel.Email) (StartCheckoutCommand, error) {
	if err := errors.Join(parcelID.Validate(), customerEmail.Validate()); err != nil {
		return StartCheckoutCommand{}, err
	}

	return StartCheckoutCommand{
		parcelID:      parcelID,
		customerEmail: customerEmail,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

func (c StartCheckoutCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c StartCheckoutCommand) CustomerEmail() kernel.Email {
	return c.customerEmail
}
