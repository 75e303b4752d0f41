package services

import (
	"fmt"
	"strconv"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// DiffEngine lists the field level differences between two order snapshots.
// The output order is fixed: scalars, customer, supplier, materials, then the
// freight handler. Two calls with the same inputs return the same slice.
type DiffEngine struct{}

func NewDiffEngine() DiffEngine {
	return DiffEngine{}
}

// Diff compares the content of two snapshots of the same order. Status, lock
// and trail are not content and never show up in the result.
func (d DiffEngine) Diff(baseline, proposed *order.Order) ([]order.FieldChange, error) {
	if err := baseline.Validate(); err != nil {
		return nil, err
	}
	if err := proposed.Validate(); err != nil {
		return nil, err
	}
	return d.DiffContent(baseline.Content(), proposed.Content()), nil
}

// DiffContent compares two content values without mutating either.
func (d DiffEngine) DiffContent(baseline, proposed order.Content) []order.FieldChange {
	var c changeSet

	c.add(order.FieldEntity, "Entity", baseline.Entity, proposed.Entity)
	c.add(order.FieldMaterialName, "Material Name", baseline.MaterialName, proposed.MaterialName)
	c.add(order.FieldPONumber, "PO Number", baseline.PONumber, proposed.PONumber)
	if !baseline.Quantity.Equal(proposed.Quantity) {
		c.force(order.FieldQuantity, "Quantity", baseline.Quantity.String(), proposed.Quantity.String())
	}
	c.add(order.FieldTransitType, "Transit Type", baseline.TransitType, proposed.TransitType)
	if !baseline.PriceToCustomer.Equal(proposed.PriceToCustomer) {
		c.force(order.FieldPriceToCustomer, "Price to Customer",
			baseline.PriceToCustomer.String(), proposed.PriceToCustomer.String())
	}
	if !optionalMoneyEqual(baseline.PriceFromSupplier, proposed.PriceFromSupplier) {
		c.force(order.FieldPriceFromSupplier, "Price from Supplier",
			optionalMoney(baseline.PriceFromSupplier), optionalMoney(proposed.PriceFromSupplier))
	}

	c.addRecord(order.FieldCustomerDetail, "Customer - ", contactFields(baseline.Customer), contactFields(proposed.Customer))

	switch {
	case baseline.Supplier == nil && proposed.Supplier != nil:
		c.force(order.FieldSupplier, "Supplier", "", proposed.Supplier.Name)
	case baseline.Supplier != nil && proposed.Supplier == nil:
		c.force(order.FieldSupplier, "Supplier", baseline.Supplier.Name, "")
	case baseline.Supplier != nil && proposed.Supplier != nil:
		c.addRecord(order.FieldSupplierDetail, "Supplier - ",
			contactFields(*baseline.Supplier), contactFields(*proposed.Supplier))
	}

	d.diffMaterials(&c, baseline, proposed)

	switch {
	case baseline.FreightHandler == nil && proposed.FreightHandler != nil:
		c.force(order.FieldFreightHandler, "Freight Handler", "", handlerName(proposed.FreightHandler))
	case baseline.FreightHandler != nil && proposed.FreightHandler == nil:
		c.force(order.FieldFreightHandler, "Freight Handler", handlerName(baseline.FreightHandler), "")
	case baseline.FreightHandler != nil && proposed.FreightHandler != nil:
		c.addRecord(order.FieldFreightHandlerDetail, "Freight Handler - ",
			freightHandlerFields(*baseline.FreightHandler), freightHandlerFields(*proposed.FreightHandler))
	}

	return c.changes
}

// diffMaterials matches line items by id. Shared items are compared field by
// field and labelled with their 1-based position in the proposal; new items
// are reported one by one. Removals collapse into one change from the old to
// the new item count, labelled with the number removed: with additions in
// the same edit the two counts can be equal.
func (d DiffEngine) diffMaterials(c *changeSet, baseline, proposed order.Content) {
	for i, item := range proposed.Materials {
		prefix := fmt.Sprintf("Material %d - ", i+1)

		before, _, found := baseline.Material(item.ID)
		if !found {
			c.force(order.FieldMaterialAdded, "New Material Added", "", item.Name)
			continue
		}

		c.add(order.FieldLineItemName, prefix+"Name", before.Name, item.Name)
		if !before.Quantity.Equal(item.Quantity) {
			c.force(order.FieldLineItemQuantity, prefix+"Quantity", before.Quantity.String(), item.Quantity.String())
		}
		if !before.CustomerUnitPrice.Equal(item.CustomerUnitPrice) {
			c.force(order.FieldLineItemCustomerUnitPrice, prefix+"Customer Unit Price",
				before.CustomerUnitPrice.String(), item.CustomerUnitPrice.String())
		}
		if !optionalMoneyEqual(before.SupplierUnitPrice, item.SupplierUnitPrice) {
			c.force(order.FieldLineItemSupplierUnitPrice, prefix+"Supplier Unit Price",
				optionalMoney(before.SupplierUnitPrice), optionalMoney(item.SupplierUnitPrice))
		}
		if !before.TaxRate.Equal(item.TaxRate) {
			c.force(order.FieldLineItemTaxRate, prefix+"Tax Rate", before.TaxRate.String(), item.TaxRate.String())
		}
	}

	removed := 0
	for _, item := range baseline.Materials {
		if _, _, found := proposed.Material(item.ID); !found {
			removed++
		}
	}
	if removed > 0 {
		c.force(order.FieldMaterialsRemoved, fmt.Sprintf("Materials Removed (%d)", removed),
			strconv.Itoa(len(baseline.Materials)), strconv.Itoa(len(proposed.Materials)))
	}
}

type changeSet struct {
	changes []order.FieldChange
}

// add records a change when the rendered values differ.
func (c *changeSet) add(field order.FieldID, label, oldValue, newValue string) {
	if oldValue != newValue {
		c.force(field, label, oldValue, newValue)
	}
}

func (c *changeSet) force(field order.FieldID, label, oldValue, newValue string) {
	c.changes = append(c.changes, order.FieldChange{
		Field:    field,
		Label:    label,
		OldValue: oldValue,
		NewValue: newValue,
	})
}

func (c *changeSet) addRecord(field order.FieldID, prefix string, before, after []namedValue) {
	for i := range before {
		c.add(field, prefix+before[i].name, before[i].value, after[i].value)
	}
}

type namedValue struct {
	name  string
	value string
}

func contactFields(contact order.Contact) []namedValue {
	return []namedValue{
		{"Name", contact.Name},
		{"Address", contact.Address},
		{"Country", contact.Country},
		{"Email", contact.Email},
		{"Phone", contact.Phone},
		{"GSTIN", contact.GSTIN},
	}
}

func freightHandlerFields(h order.FreightHandler) []namedValue {
	return []namedValue{
		{"Name", h.Name},
		{"Company", h.Company},
		{"Address", h.Address},
		{"Country", h.Country},
		{"Email", h.Email},
		{"Phone", h.Phone},
		{"Contact Person", h.ContactPerson},
		{"GSTIN", h.GSTIN},
		{"Tracking Number", h.TrackingNumber},
		{"Shipping Method", h.ShippingMethod},
		{"Estimated Delivery", h.EstimatedDelivery},
	}
}

func handlerName(h *order.FreightHandler) string {
	if h.Name != "" {
		return h.Name
	}
	return h.Company
}

func optionalMoney(m *kernel.Money) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func optionalMoneyEqual(a, b *kernel.Money) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
