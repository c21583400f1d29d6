package http

import (
	"net/http"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type AppendTrackingRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListTrackingEvents is public: the tracking id is what customers share.
func (s *Server) ListTrackingEvents(c echo.Context) error {
	query, err := queries.NewListTrackingEventsQuery(c.Param("trackingId"))
	if err != nil {
		return err
	}
	events, err := s.handlers.ListTrackingEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]TrackingEventResponse, len(events))
	for i, e := range events {
		out[i] = TrackingEventResponse{
			ID:         e.ID.String(),
			TrackingID: e.TrackingID,
			Status:     e.Status,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) AppendTrackingEvent(c echo.Context) error {
	var req AppendTrackingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewAppendTrackingEventCommand(c.Param("trackingId"), req.Status)
	if err != nil {
		return err
	}
	event, err := s.handlers.AppendTracking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trackingEventFromDomain(event))
}
