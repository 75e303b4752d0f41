package queries_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, name string, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("id-"+name, name, role)
	require.NoError(t, err)
	return a
}

func newContent(t *testing.T, poNumber, customer string) order.Content {
	t.Helper()
	qty, err := kernel.NewQuantity(decimal.NewFromInt(100), "KG")
	require.NoError(t, err)
	price, err := kernel.NewMoney(decimal.RequireFromString("45.5"), "USD")
	require.NoError(t, err)

	return order.Content{
		Entity:          "HRV",
		MaterialName:    "Sodium Citrate",
		PONumber:        poNumber,
		Quantity:        qty,
		TransitType:     "Sea",
		PriceToCustomer: price,
		Customer:        order.Contact{Name: customer},
		Materials: []order.MaterialItem{
			{ID: kernel.NewUUID(), Name: "Sodium Citrate", Quantity: qty, CustomerUnitPrice: price},
		},
	}
}

// newStoredOrder restores an approved order, past the field change threshold.
func newStoredOrder(t *testing.T) *order.Order {
	t.Helper()
	return newStoredOrderFor(t, "HRVPOR2024-0001", "Acme Foods")
}

func newStoredOrderFor(t *testing.T, poNumber, customer string) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), order.POApproved, newContent(t, poNumber, customer),
		newActor(t, "Asha Rao", kernel.RoleEmployee), time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		false, nil, order.NewAuditTrail(nil, nil))
	require.NoError(t, err)
	return o
}
