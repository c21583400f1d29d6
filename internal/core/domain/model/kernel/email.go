package kernel

import (
	"strings"

	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/guard"

	"github.com/go-playground/validator/v10"
)

var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail")

var emailValidator = validator.New(validator.WithRequiredStructEnabled())

// Email is a normalized (trimmed, lower-cased) e-mail address. Users, riders and
// parcel senders are cross-referenced by it.
type Email struct {
	value string
	guard guard.ConstructorGuard
}

func NewEmail(raw string) (Email, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if err := emailValidator.Var(value, "email"); err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return Email{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}
