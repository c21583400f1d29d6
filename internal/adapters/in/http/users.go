package http

import (
	"fmt"
	"net/http"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoURL"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type RoleResponse struct {
	Role string `json:"role"`
}

// CreateUser registers the caller's account. Repeating the call returns the
// stored account with 200 instead of 201.
func (s *Server) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	principal, err := principalOf(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateUserCommand(req.Name, req.Email, req.PhotoURL)
	if err != nil {
		return err
	}
	if !cmd.Email().IsEqual(principal.Email) {
		return fmt.Errorf("%w: account e-mail must match the token", errs.ErrForbidden)
	}

	account, created, err := s.handlers.CreateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, userFromDomain(account))
}

func (s *Server) SearchUsers(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("limit", err)
		}
	}

	query, err := queries.NewSearchUsersQuery(c.QueryParam("search"), limit)
	if err != nil {
		return err
	}
	list, err := s.handlers.SearchUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]UserResponse, len(list))
	for i, u := range list {
		out[i] = UserResponse{
			ID:        u.ID.String(),
			Name:      u.Name,
			Email:     u.Email,
			PhotoURL:  u.PhotoURL,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) GetUserRole(c echo.Context) error {
	email, err := kernel.NewEmail(c.Param("email"))
	if err != nil {
		return err
	}
	query, err := queries.NewGetUserRoleQuery(email)
	if err != nil {
		return err
	}
	role, err := s.handlers.GetUserRole.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RoleResponse{Role: role.String()})
}

func (s *Server) ChangeUserRole(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req ChangeRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewChangeUserRoleCommand(id, req.Role)
	if err != nil {
		return err
	}
	account, err := s.handlers.ChangeUserRole.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFromDomain(account))
}
