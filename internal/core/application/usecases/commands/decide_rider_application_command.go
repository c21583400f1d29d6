package commands

import (
	"errors"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/pkg/guard"
)

var ErrDecideRiderApplicationCommandIsNotConstructed = errors.New(
	"DecideRiderApplicationCommand must be created via NewDecideRiderApplicationCommand constructor",
)

// DecideRiderApplicationCommand approves or rejects a rider.
type DecideRiderApplicationCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	decision rider.ApprovalStatus

	guard guard.ConstructorGuard
}

func NewDecideRiderApplicationCommand(riderID kernel.UUID, decision string) (DecideRiderApplicationCommand, error) {
	cmd := DecideRiderApplicationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRiderID(riderID),
		cmd.setDecision(decision),
	); err != nil {
		return DecideRiderApplicationCommand{}, err
	}

	return cmd, nil
}

func (c DecideRiderApplicationCommand) Validate() error {
	return c.guard.Validate(ErrDecideRiderApplicationCommandIsNotConstructed)
}

func (c DecideRiderApplicationCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c DecideRiderApplicationCommand) Decision() rider.ApprovalStatus {
	return c.decision
}

func (c *DecideRiderApplicationCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.riderID = id
	return nil
}

func (c *DecideRiderApplicationCommand) setDecision(raw string) error {
	decision, err := rider.ParseApprovalStatus(raw)
	if err != nil {
		return err
	}
	if !decision.IsDecision() {
		return rider.ErrDecisionIsInvalid
	}

	c.decision = decision
	return nil
}
