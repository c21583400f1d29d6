package commands

import (
	"context"
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/user"
	"zapshift/internal/pkg/errs"
)

// CreateUserCommandHandler returns the account for the e-mail, creating it with the
// user role on first sight. created reports whether a new account was stored.
type CreateUserCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCreateUserCommandHandler(uowFactory UoWFactory, clock Clock) CreateUserCommandHandler {
	if clock == nil {
		clock = SystemClock
	}
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (account *user.User, created bool, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	existing, err := users.GetByEmail(ctx, cmd.Email())
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	account, err = user.NewUser(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.PhotoURL(), h.clock())
	if err != nil {
		return nil, false, err
	}

	if err = users.Add(ctx, account); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return account, true, nil
}
