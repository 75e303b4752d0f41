package order_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func mustActor(t *testing.T, id, name string, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, name, role)
	require.NoError(t, err)
	return actor
}

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), "USD")
	require.NoError(t, err)
	return m
}

func mustQuantity(t *testing.T, value int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.NewFromInt(value), "KG")
	require.NoError(t, err)
	return q
}

func sampleContent(t *testing.T) order.Content {
	t.Helper()
	supplierPrice := mustMoney(t, "38")
	return order.Content{
		Entity:          "HRV",
		MaterialName:    "Sodium Citrate",
		PONumber:        "HRVPOR2024-0007",
		Quantity:        mustQuantity(t, 100),
		TransitType:     "Sea",
		PriceToCustomer: mustMoney(t, "45.5"),
		Customer:        order.Contact{Name: "Acme Foods", Country: "India", Email: "buying@acme.example"},
		Materials: []order.MaterialItem{
			{
				ID:                kernel.NewUUID(),
				Name:              "Sodium Citrate",
				Quantity:          mustQuantity(t, 100),
				CustomerUnitPrice: mustMoney(t, "45.5"),
				SupplierUnitPrice: &supplierPrice,
				TaxRate:           decimal.NewFromInt(18),
			},
		},
	}
}

func newOrderAt(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	creator := mustActor(t, "u-1", "Asha Rao", kernel.RoleEmployee)
	o, err := order.RestoreOrder(kernel.NewUUID(), status, sampleContent(t), creator, testNow,
		false, nil, order.NewAuditTrail(nil, nil))
	require.NoError(t, err)
	return o
}

func pendingRequest(t *testing.T, o *order.Order, proposed order.Content) *order.FieldChangeRequest {
	t.Helper()
	requester := mustActor(t, "u-2", "Ravi Kumar", kernel.RoleEmployee)
	request, err := order.NewFieldChangeRequest(kernel.NewUUID(), requester, testNow,
		[]order.FieldChange{{Field: order.FieldQuantity, Label: "Quantity", OldValue: "100 KG", NewValue: "150 KG"}},
		o.Content(), proposed)
	require.NoError(t, err)
	return request
}
