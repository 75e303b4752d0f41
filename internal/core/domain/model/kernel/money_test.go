package kernel_test

import (
	"testing"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should normalise currency and render currency first", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("45.50"), "usd")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "USD", m.Currency())
		assert.Equal(t, "USD 45.5", m.String())
	})

	t.Run("should compare amounts numerically", func(t *testing.T) {
		a, _ := kernel.NewMoney(decimal.RequireFromString("45.50"), "USD")
		b, _ := kernel.NewMoney(decimal.RequireFromString("45.5"), "USD")
		c, _ := kernel.NewMoney(decimal.RequireFromString("45.5"), "EUR")

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})

	t.Run("should accept four decimal places and ignore trailing zeros", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("1.23450000"), "USD")

		require.NoError(t, err)
		assert.Equal(t, "USD 1.2345", m.String())
	})

	t.Run("should reject a fifth decimal place instead of rounding it", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.RequireFromString("1.23456"), "USD")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("should reject amounts wider than twenty digits", func(t *testing.T) {
		largest, err := kernel.NewMoney(decimal.RequireFromString("9999999999999999.9999"), "USD")
		require.NoError(t, err)
		assert.Equal(t, "USD 9999999999999999.9999", largest.String())

		_, err = kernel.NewMoney(decimal.RequireFromString("10000000000000000"), "USD")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative amount and bad currency", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1), "RUPEES")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "currency")
	})
}

func TestNewQuantity(t *testing.T) {
	t.Run("should render value then unit", func(t *testing.T) {
		q, err := kernel.NewQuantity(decimal.NewFromInt(100), "KG")

		require.NoError(t, err)
		assert.Equal(t, "100 KG", q.String())
	})

	t.Run("should treat unit as part of equality", func(t *testing.T) {
		kg, _ := kernel.NewQuantity(decimal.NewFromInt(100), "KG")
		mt, _ := kernel.NewQuantity(decimal.NewFromInt(100), "MT")
		same, _ := kernel.NewQuantity(decimal.RequireFromString("100.000"), "KG")

		assert.False(t, kg.Equal(mt))
		assert.True(t, kg.Equal(same))
	})

	t.Run("should reject values that storage would round or overflow", func(t *testing.T) {
		_, err := kernel.NewQuantity(decimal.RequireFromString("100.00001"), "KG")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewQuantity(decimal.New(1, 17), "KG")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("should require a unit", func(t *testing.T) {
		_, err := kernel.NewQuantity(decimal.NewFromInt(1), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var q kernel.Quantity

		assert.Equal(t, kernel.ErrQuantityIsNotConstructed, q.Validate())
	})
}
