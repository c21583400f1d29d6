package commands

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers the account behind a signed-in identity. It is sent on
// every login, so an existing e-mail is not an error.
type CreateUserCommand struct {
	name     string
	email    kernel.Email
	photoURL string

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(name, email, photoURL string) (CreateUserCommand, error) {
	address, err := kernel.NewEmail(email)
	if err != nil {
		return CreateUserCommand{}, err
	}

	return CreateUserCommand{
		name:     name,
		email:    address,
		photoURL: photoURL,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) Name() string {
	return c.name
}

func (c CreateUserCommand) Email() kernel.Email {
	return c.email
}

func (c CreateUserCommand) PhotoURL() string {
	return c.photoURL
}
