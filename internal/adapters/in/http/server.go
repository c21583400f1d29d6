// Package http exposes the parcel service over REST with echo.
//
// Every route except health, metrics, tracking logs and payment reconciliation
// requires a bearer token. Role checks read the role stored for the token's
// e-mail, so a role change takes effect on the next request.
package http

import (
	"log/slog"
	"net/http"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/user"
	"zapshift/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	CreateParcel       commands.CreateParcelCommandHandler
	DeleteParcel       commands.DeleteParcelCommandHandler
	AssignRider        commands.AssignRiderCommandHandler
	UpdateParcelStatus commands.UpdateParcelStatusCommandHandler
	RejectAssignment   commands.RejectAssignmentCommandHandler
	StartCheckout      commands.StartCheckoutCommandHandler
	ReconcilePayment   commands.ReconcilePaymentCommandHandler
	RegisterRider      commands.RegisterRiderCommandHandler
	DecideRider        commands.DecideRiderApplicationCommandHandler
	DeleteRider        commands.DeleteRiderCommandHandler
	CreateUser         commands.CreateUserCommandHandler
	ChangeUserRole     commands.ChangeUserRoleCommandHandler
	AppendTracking     commands.AppendTrackingEventCommandHandler

	GetParcel                queries.GetParcelQueryHandler
	GetParcels               queries.GetParcelsQueryHandler
	GetRiderParcels          queries.GetRiderParcelsQueryHandler
	GetDeliveryStatusStats   queries.GetDeliveryStatusStatsQueryHandler
	GetPayments              queries.GetPaymentsQueryHandler
	GetRiders                queries.GetRidersQueryHandler
	GetRiderDeliveriesPerDay queries.GetRiderDeliveriesPerDayQueryHandler
	SearchUsers              queries.SearchUsersQueryHandler
	GetUserRole              queries.GetUserRoleQueryHandler
	ListTrackingEvents       queries.ListTrackingEventsQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	verifier ports.IdentityVerifier
	roles    RoleResolver
}

func NewServer(handlers Handlers, verifier ports.IdentityVerifier) *Server {
	return &Server{
		handlers: handlers,
		verifier: verifier,
		roles:    handlers.GetUserRole,
	}
}

// NewEcho builds the echo instance with the service's middleware and routes.
func NewEcho(s *Server, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	s.Register(e)
	return e
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/trackings/:trackingId/logs", s.ListTrackingEvents)
	e.POST("/payments/reconcile", s.ReconcilePayment)

	auth := e.Group("", Authenticate(s.verifier))
	admin := RequireRole(s.roles, user.RoleAdmin)
	rider := RequireRole(s.roles, user.RoleRider)

	auth.POST("/users", s.CreateUser)
	auth.GET("/users", s.SearchUsers, admin)
	auth.GET("/users/:email/role", s.GetUserRole)
	auth.PATCH("/users/:id/role", s.ChangeUserRole, admin)

	auth.POST("/parcels", s.CreateParcel)
	auth.GET("/parcels", s.GetParcels)
	auth.GET("/parcels/delivery-status/stats", s.GetDeliveryStatusStats, admin)
	auth.GET("/parcels/rider", s.GetRiderParcels, rider)
	auth.GET("/parcels/:id", s.GetParcel)
	auth.DELETE("/parcels/:id", s.DeleteParcel, admin)
	auth.PATCH("/parcels/:id/assign", s.AssignRider, admin)
	auth.PATCH("/parcels/:id/status", s.UpdateParcelStatus, rider)
	auth.PATCH("/parcels/:id/reject", s.RejectAssignment, rider)

	auth.POST("/payments/checkout-session", s.StartCheckout)
	auth.GET("/payments", s.GetPayments)

	auth.GET("/riders", s.GetRiders, admin)
	auth.POST("/riders", s.RegisterRider)
	auth.GET("/riders/deliveries-per-day", s.GetRiderDeliveriesPerDay, rider)
	auth.PATCH("/riders/:id/approval", s.DecideRider, admin)
	auth.DELETE("/riders/:id", s.DeleteRider, admin)

	auth.POST("/trackings/:trackingId/logs", s.AppendTrackingEvent, admin)
}
