package commands

import (
	"errors"
	"strings"

	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand applies the outcome of a gateway checkout session. It is
// sent by the payment success redirect and may arrive any number of times.
type ReconcilePaymentCommand struct {
	sessionRef string

	guard guard.ConstructorGuard
}

func NewReconcilePaymentCommand(sessionRef string) (ReconcilePaymentCommand, error) {
	sessionRef = strings.TrimSpace(sessionRef)
	if sessionRef == "" {
		return ReconcilePaymentCommand{}, errs.NewValueIsRequiredError("session_id")
	}

	return ReconcilePaymentCommand{sessionRef: sessionRef, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) SessionRef() string {
	return c.sessionRef
}
