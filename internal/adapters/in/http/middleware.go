package http

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/user"
	"zapshift/internal/core/ports"
	"zapshift/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	principalKey = "principal"
	roleKey      = "role"
)

// RoleResolver looks up the role stored for an account.
type RoleResolver interface {
	Handle(ctx context.Context, query queries.GetUserRoleQuery) (user.Role, error)
}

// Authenticate requires an `Authorization: Bearer <token>` header and stores the
// verified principal on the context.
func Authenticate(verifier ports.IdentityVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return fmt.Errorf("%w: missing bearer token", errs.ErrUnauthorized)
			}

			principal, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRole lets the request through only when the principal's stored role is one
// of allowed. An account that does not exist yet has no role.
func RequireRole(roles RoleResolver, allowed ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := resolveRole(c, roles)
			if err != nil {
				return err
			}
			if !slices.Contains(allowed, role) {
				return fmt.Errorf("%w: role %q may not access %s", errs.ErrForbidden, role, c.Path())
			}
			return next(c)
		}
	}
}

func principalOf(c echo.Context) (ports.Principal, error) {
	principal, ok := c.Get(principalKey).(ports.Principal)
	if !ok {
		return ports.Principal{}, fmt.Errorf("%w: no principal on request", errs.ErrUnauthorized)
	}
	return principal, nil
}

// resolveRole reads the principal's role once per request.
func resolveRole(c echo.Context, roles RoleResolver) (user.Role, error) {
	if role, ok := c.Get(roleKey).(user.Role); ok {
		return role, nil
	}

	principal, err := principalOf(c)
	if err != nil {
		return "", err
	}

	query, err := queries.NewGetUserRoleQuery(principal.Email)
	if err != nil {
		return "", err
	}

	role, err := roles.Handle(c.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "", fmt.Errorf("%w: %s has no account", errs.ErrForbidden, principal.Email)
	}
	if err != nil {
		return "", err
	}

	c.Set(roleKey, role)
	return role, nil
}

// requesterOf describes the caller for ownership-scoped reads. Callers without an
// account are treated as plain users.
func requesterOf(c echo.Context, roles RoleResolver) (queries.Requester, error) {
	principal, err := principalOf(c)
	if err != nil {
		return queries.Requester{}, err
	}

	role, err := resolveRole(c, roles)
	if errors.Is(err, errs.ErrForbidden) {
		return queries.Requester{Email: principal.Email}, nil
	}
	if err != nil {
		return queries.Requester{}, err
	}

	return queries.Requester{Email: principal.Email, IsAdmin: role == user.RoleAdmin}, nil
}
