package kernel

import (
	"strings"

	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for parcel costs and checkout sessions.
const DefaultCurrency = "usd"

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// Money is a non-negative amount in a lower-cased ISO currency.
type Money struct {
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

// NewMoneyFromMinorUnits converts gateway amounts (cents) into Money.
func NewMoneyFromMinorUnits(minor int64, currency string) (Money, error) {
	return NewMoney(decimal.New(minor, -2), currency)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// MinorUnits rounds to the nearest cent.
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(2).Round(0).IntPart()
}

func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
