package commands

import (
	"errors"

	"zapshift/internal/pkg/guard"
)

var ErrAutoAssignRiderCommandIsNotConstructed = errors.New(
	"AutoAssignRiderCommand must be created via NewAutoAssignRiderCommand constructor",
)

// AutoAssignRiderCommand asks the dispatcher to staff the oldest parcel waiting for
// pickup. It is parameterless and issued by the scheduler.
type AutoAssignRiderCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoAssignRiderCommand() AutoAssignRiderCommand {
	return AutoAssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c AutoAssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignRiderCommandIsNotConstructed)
}
