package kernel

import (
	"errors"
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Amounts and quantities are stored as decimal(20,4).
const (
	MaxScale     = 4
	MaxPrecision = 20
)

var maxMagnitude = decimal.New(1, MaxPrecision-MaxScale)

var (
	ErrMoneyIsNotConstructed    = errors.New("Money must be created via NewMoney constructor")
	ErrQuantityIsNotConstructed = errors.New("Quantity must be created via NewQuantity constructor")
)

// Money is a non-negative amount in a single currency. It renders as
// "<currency> <amount>", the form used in field change summaries.
type Money struct {
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	var errList []error
	if amount.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String())))
	}
	if err := checkStorable("amount", amount); err != nil {
		errList = append(errList, err)
	}
	if len(currency) != 3 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three letter code", currency)))
	}
	if err := errors.Join(errList...); err != nil {
		return Money{}, err
	}

	return Money{amount: amount, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// Equal compares amounts numerically, so 45.50 equals 45.5.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.String())
}

// Quantity is a non-negative measured amount, e.g. 100 KG.
type Quantity struct {
	value decimal.Decimal
	unit  string

	guard guard.ConstructorGuard
}

func NewQuantity(value decimal.Decimal, unit string) (Quantity, error) {
	unit = strings.TrimSpace(unit)

	var errList []error
	if value.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is negative", value.String())))
	}
	if err := checkStorable("quantity", value); err != nil {
		errList = append(errList, err)
	}
	if unit == "" {
		errList = append(errList, errs.NewValueIsRequiredError("unit"))
	}
	if err := errors.Join(errList...); err != nil {
		return Quantity{}, err
	}

	return Quantity{value: value, unit: unit, guard: guard.NewConstructorGuard()}, nil
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

func (q Quantity) Value() decimal.Decimal {
	return q.value
}

func (q Quantity) Unit() string {
	return q.unit
}

func (q Quantity) Equal(other Quantity) bool {
	return q.unit == other.unit && q.value.Equal(other.value)
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.value.String(), q.unit)
}

// checkStorable rejects values that would be rounded or overflow in storage:
// more than MaxScale fractional digits or MaxPrecision digits in total.
// Trailing zeros do not count, so 45.50000 is accepted.
func checkStorable(param string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MaxScale)) {
		return errs.NewValueIsOutOfRangeErrorWithCause(param, d.String(), 0, maxMagnitude.String(),
			fmt.Errorf("more than %d decimal places", MaxScale))
	}
	if d.Abs().GreaterThanOrEqual(maxMagnitude) {
		return errs.NewValueIsOutOfRangeErrorWithCause(param, d.String(), 0, maxMagnitude.String(),
			fmt.Errorf("more than %d digits", MaxPrecision))
	}
	return nil
}
