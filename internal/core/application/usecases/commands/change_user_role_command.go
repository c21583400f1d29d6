package commands

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/user"
	"zapshift/internal/pkg/guard"
)

var ErrChangeUserRoleCommandIsNotConstructed = errors.New(
	"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
)

type ChangeUserRoleCommand struct {
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

func NewChangeUserRoleCommand(userID kernel.UUID, role string) (ChangeUserRoleCommand, error) {
	parsed, err := user.ParseRole(role)

	if err = errors.Join(userID.Validate(), err); err != nil {
		return ChangeUserRoleCommand{}, err
	}

	return ChangeUserRoleCommand{userID: userID, role: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

func (c ChangeUserRoleCommand) UserID() kernel.UUID {
	return c.userID
}

func (c ChangeUserRoleCommand) Role() user.Role {
	return c.role
}
