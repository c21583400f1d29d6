package queries

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/guard"
)

var ErrGetUserRoleQueryIsNotConstructed = errors.New(
	"GetUserRoleQuery must be created via NewGetUserRoleQuery constructor",
)

// GetUserRoleQuery looks up the role of the account registered under an e-mail.
// The HTTP layer uses it for role checks as well as for the role endpoint.
type GetUserRoleQuery struct {
	email kernel.Email
	guard guard.ConstructorGuard
}

func NewGetUserRoleQuery(email kernel.Email) (GetUserRoleQuery, error) {
	if err := email.Validate(); err != nil {
		return GetUserRoleQuery{}, err
	}
	return GetUserRoleQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserRoleQuery) Validate() error {
	return q.guard.Validate(ErrGetUserRoleQueryIsNotConstructed)
}

func (q GetUserRoleQuery) Email() kernel.Email {
	return q.email
}
