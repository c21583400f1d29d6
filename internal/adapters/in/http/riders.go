package http

import (
	"net/http"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/rider"

	"github.com/labstack/echo/v4"
)

type RegisterRiderRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Region   string `json:"region" validate:"required"`
	District string `json:"district" validate:"required"`
}

type RiderDecisionRequest struct {
	Status string `json:"status" validate:"required"`
}

type DeliveriesPerDayResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

func (s *Server) GetRiders(c echo.Context) error {
	query, err := queries.NewGetRidersQuery(queries.RiderFilter{
		Status:     c.QueryParam("status"),
		District:   c.QueryParam("district"),
		WorkStatus: c.QueryParam("workStatus"),
	})
	if err != nil {
		return err
	}
	list, err := s.handlers.GetRiders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]RiderResponse, len(list))
	for i, r := range list {
		out[i] = RiderResponse{
			ID:         r.ID.String(),
			Name:       r.Name,
			Email:      r.Email,
			Phone:      r.Phone,
			Region:     r.Region,
			District:   r.District,
			Status:     r.Status,
			WorkStatus: r.WorkStatus,
			CreatedAt:  r.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, out)
}

// RegisterRider files a rider application for the caller.
func (s *Server) RegisterRider(c echo.Context) error {
	var req RegisterRiderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	principal, err := principalOf(c)
	if err != nil {
		return err
	}

	cmd := commands.NewRegisterRiderCommand(rider.Profile{
		Name:     req.Name,
		Email:    principal.Email,
		Phone:    req.Phone,
		Region:   req.Region,
		District: req.District,
	})
	r, err := s.handlers.RegisterRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, riderFromDomain(r))
}

func (s *Server) DecideRider(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req RiderDecisionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewDecideRiderApplicationCommand(id, req.Status)
	if err != nil {
		return err
	}
	r, err := s.handlers.DecideRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, riderFromDomain(r))
}

func (s *Server) DeleteRider(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteRiderCommand(id)
	if err != nil {
		return err
	}
	if err := s.handlers.DeleteRider.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetRiderDeliveriesPerDay(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetRiderDeliveriesPerDayQuery(principal.Email.String())
	if err != nil {
		return err
	}
	days, err := s.handlers.GetRiderDeliveriesPerDay.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]DeliveriesPerDayResponse, len(days))
	for i, d := range days {
		out[i] = DeliveriesPerDayResponse{Date: d.Date, Count: d.Count}
	}
	return c.JSON(http.StatusOK, out)
}
