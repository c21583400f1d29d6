package commands

import (
	"context"

	"zapshift/internal/core/domain/model/user"
)

type ChangeUserRoleCommandHandler struct {
	uowFactory UoWFactory
}

func NewChangeUserRoleCommandHandler(uowFactory UoWFactory) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{uowFactory: uowFactory}
}

func (h ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	account, err := users.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = account.ChangeRole(cmd.Role()); err != nil {
		return nil, err
	}

	if err = users.Update(ctx, account); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}
