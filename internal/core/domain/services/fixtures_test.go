package services_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func mustActor(t *testing.T, name string, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor("id-"+name, name, role)
	require.NoError(t, err)
	return actor
}

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), "USD")
	require.NoError(t, err)
	return m
}

func usdPtr(t *testing.T, amount string) *kernel.Money {
	m := usd(t, amount)
	return &m
}

func kg(t *testing.T, value int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.NewFromInt(value), "KG")
	require.NoError(t, err)
	return q
}

func material(t *testing.T, name string, qty int64, price string) order.MaterialItem {
	return order.MaterialItem{
		ID:                kernel.NewUUID(),
		Name:              name,
		Quantity:          kg(t, qty),
		CustomerUnitPrice: usd(t, price),
		TaxRate:           decimal.NewFromInt(18),
	}
}

func baseContent(t *testing.T) order.Content {
	t.Helper()
	return order.Content{
		Entity:          "HRV",
		MaterialName:    "Sodium Citrate",
		PONumber:        "HRVPOR2024-0007",
		Quantity:        kg(t, 100),
		TransitType:     "Sea",
		PriceToCustomer: usd(t, "45.5"),
		Customer:        order.Contact{Name: "Acme Foods", Country: "India"},
		Materials: []order.MaterialItem{
			material(t, "Sodium Citrate", 100, "45.5"),
			material(t, "Citric Acid", 40, "12"),
		},
	}
}

func orderAt(t *testing.T, status order.Status, content order.Content) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), status, content,
		mustActor(t, "Asha Rao", kernel.RoleEmployee), testNow, false, nil, order.NewAuditTrail(nil, nil))
	require.NoError(t, err)
	return o
}

func propose(t *testing.T, baseline *order.Order, edit func(c *order.Content)) *order.Order {
	t.Helper()
	content := baseline.Content()
	edit(&content)
	proposed, err := baseline.WithContent(content)
	require.NoError(t, err)
	return proposed
}
