package http

import (
	"net/http"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CreateParcelRequest struct {
	ParcelName       string          `json:"parcelName" validate:"required"`
	ParcelType       string          `json:"parcelType" validate:"required,oneof=document non-document"`
	ParcelWeight     decimal.Decimal `json:"parcelWeight"`
	Cost             decimal.Decimal `json:"cost"`
	Currency         string          `json:"currency"`
	SenderName       string          `json:"senderName" validate:"required"`
	SenderPhone      string          `json:"senderPhone"`
	SenderRegion     string          `json:"senderRegion" validate:"required"`
	SenderDistrict   string          `json:"senderDistrict" validate:"required"`
	SenderAddress    string          `json:"senderAddress"`
	ReceiverName     string          `json:"receiverName" validate:"required"`
	ReceiverPhone    string          `json:"receiverPhone"`
	ReceiverRegion   string          `json:"receiverRegion" validate:"required"`
	ReceiverDistrict string          `json:"receiverDistrict" validate:"required"`
	ReceiverAddress  string          `json:"receiverAddress"`
}

type AssignRiderRequest struct {
	RiderID string `json:"riderId" validate:"required,uuid"`
}

type ParcelStatusRequest struct {
	DeliveryStatus string `json:"deliveryStatus" validate:"required"`
	RiderID        string `json:"riderId" validate:"required,uuid"`
}

type DeliveryStatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CreateParcel books a parcel for the caller, who becomes its sender.
func (s *Server) CreateParcel(c echo.Context) error {
	var req CreateParcelRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	principal, err := principalOf(c)
	if err != nil {
		return err
	}

	currency := req.Currency
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	cost, err := kernel.NewMoney(req.Cost, currency)
	if err != nil {
		return err
	}

	cmd := commands.NewCreateParcelCommand(
		parcel.Details{
			Name:   req.ParcelName,
			Kind:   parcel.Kind(req.ParcelType),
			Weight: req.ParcelWeight,
			Cost:   cost,
		},
		parcel.Sender{
			Name:     req.SenderName,
			Email:    principal.Email,
			Phone:    req.SenderPhone,
			Region:   req.SenderRegion,
			District: req.SenderDistrict,
			Address:  req.SenderAddress,
		},
		parcel.Receiver{
			Name:     req.ReceiverName,
			Phone:    req.ReceiverPhone,
			Region:   req.ReceiverRegion,
			District: req.ReceiverDistrict,
			Address:  req.ReceiverAddress,
		},
	)

	p, err := s.handlers.CreateParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, parcelFromDomain(p))
}

// GetParcels lists parcels newest first. Admins may list anyone's parcels;
// everyone else only their own.
func (s *Server) GetParcels(c echo.Context) error {
	requester, err := requesterOf(c, s.roles)
	if err != nil {
		return err
	}

	email := c.QueryParam("email")
	if !requester.IsAdmin {
		if email == "" {
			email = requester.Email.String()
		}
		asked, err := kernel.NewEmail(email)
		if err != nil {
			return err
		}
		if !asked.IsEqual(requester.Email) {
			return errs.ErrForbidden
		}
	}

	query, err := queries.NewGetParcelsQuery(email, c.QueryParam("deliveryStatus"))
	if err != nil {
		return err
	}
	list, err := s.handlers.GetParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelsFromQuery(list))
}

func (s *Server) GetParcel(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetParcelQuery(id)
	if err != nil {
		return err
	}
	p, err := s.handlers.GetParcel.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelFromQuery(p))
}

func (s *Server) GetDeliveryStatusStats(c echo.Context) error {
	counts, err := s.handlers.GetDeliveryStatusStats.Handle(
		c.Request().Context(),
		queries.NewGetDeliveryStatusStatsQuery(),
	)
	if err != nil {
		return err
	}

	out := make([]DeliveryStatusCountResponse, len(counts))
	for i, sc := range counts {
		out[i] = DeliveryStatusCountResponse{Status: sc.Status, Count: sc.Count}
	}
	return c.JSON(http.StatusOK, out)
}

// GetRiderParcels lists the caller's assignments. deliveryStatus=delivered
// switches to the completed ones.
func (s *Server) GetRiderParcels(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetRiderParcelsQuery(principal.Email.String(), c.QueryParam("deliveryStatus"))
	if err != nil {
		return err
	}
	list, err := s.handlers.GetRiderParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelsFromQuery(list))
}

func (s *Server) DeleteParcel(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteParcelCommand(id)
	if err != nil {
		return err
	}
	if err := s.handlers.DeleteParcel.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AssignRider(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req AssignRiderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignRiderCommand(id, riderID)
	if err != nil {
		return err
	}
	p, err := s.handlers.AssignRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelFromDomain(p))
}

func (s *Server) UpdateParcelStatus(c echo.Context) error {
	report, err := statusChange(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateParcelStatusCommand(report.parcelID, report.status, report.riderID, report.reporter)
	if err != nil {
		return err
	}
	p, err := s.handlers.UpdateParcelStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelFromDomain(p))
}

func (s *Server) RejectAssignment(c echo.Context) error {
	report, err := statusChange(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRejectAssignmentCommand(report.parcelID, report.status, report.riderID, report.reporter)
	if err != nil {
		return err
	}
	p, err := s.handlers.RejectAssignment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelFromDomain(p))
}

type statusReport struct {
	parcelID kernel.UUID
	riderID  kernel.UUID
	status   string
	reporter kernel.Email
}

// statusChange reads a rider's report. The reporter is the signed-in account; the
// core checks it against the rider on the parcel.
func statusChange(c echo.Context) (statusReport, error) {
	principal, err := principalOf(c)
	if err != nil {
		return statusReport{}, err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return statusReport{}, err
	}
	var req ParcelStatusRequest
	if err := bind(c, &req); err != nil {
		return statusReport{}, err
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return statusReport{}, err
	}
	return statusReport{
		parcelID: id,
		riderID:  riderID,
		status:   req.DeliveryStatus,
		reporter: principal.Email,
	}, nil
}
