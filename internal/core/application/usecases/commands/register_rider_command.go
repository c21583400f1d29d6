package commands

import (
	"errors"

	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/pkg/guard"
)

var ErrRegisterRiderCommandIsNotConstructed = errors.New(
	"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
)

// RegisterRiderCommand is a rider application submitted by a signed-in user.
type RegisterRiderCommand struct {
	profile rider.Profile

	guard guard.ConstructorGuard
}

func NewRegisterRiderCommand(profile rider.Profile) RegisterRiderCommand {
	return RegisterRiderCommand{profile: profile, guard: guard.NewConstructorGuard()}
}

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

func (c RegisterRiderCommand) Profile() rider.Profile {
	return c.profile
}
