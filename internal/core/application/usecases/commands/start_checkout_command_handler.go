package commands

import (
	"context"

	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/ports"
)

// StartCheckoutCommandHandler opens a gateway checkout for an unpaid parcel. The
// session metadata carries the parcel and tracking IDs that reconciliation later
// reads back. Nothing is written locally; the parcel changes only once the payment
// is reconciled.
type StartCheckoutCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
}

func NewStartCheckoutCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

func (h StartCheckoutCommandHandler) Handle(ctx context.Context, cmd StartCheckoutCommand) (ports.CheckoutLink, error) {
	if err := cmd.Validate(); err != nil {
		return ports.CheckoutLink{}, err
	}

	request, err := h.checkoutRequest(ctx, cmd)
	if err != nil {
		return ports.CheckoutLink{}, err
	}

	return h.gateway.CreateCheckoutSession(ctx, request)
}

// checkoutRequest reads the parcel in a short transaction, so no row lock is held
// while the gateway is called.
func (h StartCheckoutCommandHandler) checkoutRequest(ctx context.Context, cmd StartCheckoutCommand) (ports.CheckoutRequest, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.CheckoutRequest{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return ports.CheckoutRequest{}, err
	}

	if p.PaymentStatus() == parcel.PaymentPaid {
		return ports.CheckoutRequest{}, parcel.ErrParcelAlreadyPaid
	}

	return ports.CheckoutRequest{
		ParcelID:      p.ID(),
		ParcelName:    p.Details().Name,
		TrackingID:    p.TrackingID(),
		CustomerEmail: cmd.CustomerEmail(),
		Amount:        p.Details().Cost,
	}, nil
}
