package http

import (
	"net/http"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type CheckoutRequest struct {
	ParcelID string `json:"parcelId" validate:"required,uuid"`
}

// StartCheckout opens a hosted checkout page for the caller's parcel.
func (s *Server) StartCheckout(c echo.Context) error {
	var req CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	parcelID, err := kernel.UUIDFromString(req.ParcelID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartCheckoutCommand(parcelID, principal.Email)
	if err != nil {
		return err
	}
	link, err := s.handlers.StartCheckout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CheckoutResponse{SessionID: link.Reference, URL: link.URL})
}

// ReconcilePayment is hit by the checkout success redirect. It can be repeated
// safely: a session already recorded reports already-processed.
func (s *Server) ReconcilePayment(c echo.Context) error {
	cmd, err := commands.NewReconcilePaymentCommand(c.QueryParam("session_id"))
	if err != nil {
		return err
	}
	result, err := s.handlers.ReconcilePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := ReconcileResponse{
		Outcome:       string(result.Outcome),
		TransactionID: result.Session.TransactionID,
		TrackingID:    result.Session.TrackingID,
		PaymentStatus: string(result.Session.PaymentStatus),
	}
	if result.Payment != nil {
		resp.TransactionID = result.Payment.TransactionID()
		resp.TrackingID = result.Payment.TrackingID().String()
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPayments lists payment history. Without ?email only admins get an answer.
func (s *Server) GetPayments(c echo.Context) error {
	requester, err := requesterOf(c, s.roles)
	if err != nil {
		return err
	}
	query, err := queries.NewGetPaymentsQuery(c.QueryParam("email"), requester)
	if err != nil {
		return err
	}
	list, err := s.handlers.GetPayments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]PaymentResponse, len(list))
	for i, p := range list {
		out[i] = PaymentResponse{
			ID:            p.ID.String(),
			TransactionID: p.TransactionID,
			ParcelID:      p.ParcelID.String(),
			TrackingID:    p.TrackingID,
			ParcelName:    p.ParcelName,
			CustomerEmail: p.CustomerEmail,
			Amount:        p.Amount,
			Currency:      p.Currency,
			PaymentStatus: p.PaymentStatus,
			PaidAt:        p.PaidAt,
		}
	}
	return c.JSON(http.StatusOK, out)
}
