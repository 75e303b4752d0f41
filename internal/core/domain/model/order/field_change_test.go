package order_test

import (
	"testing"

	"procurement/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func TestFieldID_IsProtected(t *testing.T) {
	protected := []order.FieldID{
		order.FieldQuantity,
		order.FieldPriceToCustomer,
		order.FieldPriceFromSupplier,
		order.FieldMaterialName,
		order.FieldLineItemName,
		order.FieldLineItemQuantity,
		order.FieldLineItemCustomerUnitPrice,
		order.FieldLineItemSupplierUnitPrice,
		order.FieldMaterialAdded,
		order.FieldMaterialsRemoved,
	}
	unprotected := []order.FieldID{
		order.FieldEntity,
		order.FieldPONumber,
		order.FieldTransitType,
		order.FieldCustomerDetail,
		order.FieldSupplier,
		order.FieldSupplierDetail,
		order.FieldLineItemTaxRate,
		order.FieldFreightHandler,
		order.FieldFreightHandlerDetail,
	}

	for _, f := range protected {
		assert.True(t, f.IsProtected(), f.String())
	}
	for _, f := range unprotected {
		assert.False(t, f.IsProtected(), f.String())
	}
}

func TestParseFieldID(t *testing.T) {
	assert.Equal(t, order.FieldLineItemQuantity, order.ParseFieldID(order.FieldLineItemQuantity.String()))
	assert.Equal(t, order.FieldUnknown, order.ParseFieldID("Material 2 - Quantity"))
}

func TestProtectedChanges(t *testing.T) {
	changes := []order.FieldChange{
		{Field: order.FieldTransitType, Label: "Transit Type", OldValue: "Sea", NewValue: "Air"},
		{Field: order.FieldQuantity, Label: "Quantity", OldValue: "100 KG", NewValue: "150 KG"},
		{Field: order.FieldCustomerDetail, Label: "Customer - Email", OldValue: "a@x", NewValue: "b@x"},
		{Field: order.FieldMaterialsRemoved, Label: "Materials Removed", OldValue: "2", NewValue: "1"},
	}

	protected := order.ProtectedChanges(changes)

	assert.Equal(t, []order.FieldChange{changes[1], changes[3]}, protected)
}
