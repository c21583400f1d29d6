// Package stripe implements ports.PaymentGateway on Stripe Checkout.
//
// The parcel ID, name and tracking ID travel as session metadata, so a confirmed
// session carries everything reconciliation needs without a local lookup.
package stripe

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"zapshift/internal/core/ports"
	"zapshift/internal/pkg/errs"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	serviceName = "stripe"

	metadataParcelID   = "parcelId"
	metadataParcelName = "parcelName"
	metadataTrackingID = "trackingId"
)

type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	// BaseURL overrides the Stripe API endpoint. Empty means api.stripe.com.
	BaseURL string
}

type Gateway struct {
	api        *client.API
	successURL string
	cancelURL  string
}

var _ ports.PaymentGateway = (*Gateway)(nil)

func NewGateway(cfg Config) *Gateway {
	var backends *stripego.Backends
	if cfg.BaseURL != "" {
		backend := stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
			URL:               stripego.String(cfg.BaseURL),
			MaxNetworkRetries: stripego.Int64(0),
			LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelNull},
		})
		backends = &stripego.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	return &Gateway{
		api:        client.New(cfg.SecretKey, backends),
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// RetrieveSession reads a checkout session by its ID. The payment intent ID is the
// transaction ID; an unpaid session has none yet.
func (g *Gateway) RetrieveSession(ctx context.Context, reference string) (ports.CheckoutSession, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ports.CheckoutSession{}, errs.NewValueIsRequiredError("sessionId")
	}

	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(reference, params)
	if err != nil {
		return ports.CheckoutSession{}, translate(err, reference)
	}

	return toCheckoutSession(session), nil
}

// CreateCheckoutSession opens a one-item hosted payment page for the parcel cost.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, request ports.CheckoutRequest) (ports.CheckoutLink, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:          stripego.String(string(stripego.CheckoutSessionModePayment)),
		CustomerEmail: stripego.String(request.CustomerEmail.String()),
		SuccessURL:    stripego.String(g.successURL),
		CancelURL:     stripego.String(g.cancelURL),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(request.Amount.Currency()),
					UnitAmount: stripego.Int64(request.Amount.MinorUnits()),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(request.ParcelName),
					},
				},
				Quantity: stripego.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataParcelID, request.ParcelID.String())
	params.AddMetadata(metadataParcelName, request.ParcelName)
	params.AddMetadata(metadataTrackingID, request.TrackingID.String())

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return ports.CheckoutLink{}, translate(err, request.ParcelID.String())
	}

	return ports.CheckoutLink{Reference: session.ID, URL: session.URL}, nil
}

func toCheckoutSession(s *stripego.CheckoutSession) ports.CheckoutSession {
	out := ports.CheckoutSession{
		Reference:     s.ID,
		PaymentStatus: ports.GatewayPaymentStatus(s.PaymentStatus),
		AmountMinor:   s.AmountTotal,
		Currency:      string(s.Currency),
		ParcelID:      s.Metadata[metadataParcelID],
		ParcelName:    s.Metadata[metadataParcelName],
		TrackingID:    s.Metadata[metadataTrackingID],
		CustomerEmail: s.CustomerEmail,
	}
	if s.PaymentIntent != nil {
		out.TransactionID = s.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}

// translate maps Stripe failures onto the error kinds callers handle: a missing
// session is NotFound, everything else (network, 5xx, auth, rate limits) is retryable.
func translate(err error, reference string) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripego.ErrorCodeResourceMissing {
			return errs.NewObjectNotFoundErrorWithCause("checkoutSession", reference, err)
		}
	}
	return errs.NewUpstreamUnavailableError(serviceName, err)
}
