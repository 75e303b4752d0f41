package order

import (
	"errors"
	"fmt"
	"slices"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Contact is a customer or supplier record. All fields are free text.
type Contact struct {
	Name    string
	Address string
	Country string
	Email   string
	Phone   string
	GSTIN   string
}

// FreightHandler is the logistics partner moving the material.
type FreightHandler struct {
	Name              string
	Company           string
	Address           string
	Country           string
	Email             string
	Phone             string
	ContactPerson     string
	GSTIN             string
	TrackingNumber    string
	ShippingMethod    string
	EstimatedDelivery string
}

// MaterialItem is one line of the order. ID is stable across edits and is what
// the diff matches items by.
type MaterialItem struct {
	ID                kernel.UUID
	Name              string
	Quantity          kernel.Quantity
	CustomerUnitPrice kernel.Money
	SupplierUnitPrice *kernel.Money
	TaxRate           decimal.Decimal
}

// Content is the editable substance of an order: everything a SubmitEdit may
// change. Status, lock and trail are not part of it. Content is passed around
// by value as the baseline, proposed and committed snapshots, so Clone must be
// used before handing one out.
type Content struct {
	Entity            string
	MaterialName      string
	PONumber          string
	Quantity          kernel.Quantity
	TransitType       string
	PriceToCustomer   kernel.Money
	PriceFromSupplier *kernel.Money
	Customer          Contact
	Supplier          *Contact
	FreightHandler    *FreightHandler
	Materials         []MaterialItem
}

// Validate checks the mandatory parts of the content. Line items without a name
// fail with a ValidationError; malformed value objects fail with value errors.
func (c Content) Validate() error {
	var errList []error

	if err := c.Quantity.Validate(); err != nil {
		errList = append(errList, fmt.Errorf("quantity: %w", err))
	}
	if err := c.PriceToCustomer.Validate(); err != nil {
		errList = append(errList, fmt.Errorf("price to customer: %w", err))
	}
	if c.PriceFromSupplier != nil {
		if err := c.PriceFromSupplier.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("price from supplier: %w", err))
		}
	}
	if c.Customer.Name == "" {
		errList = append(errList, errs.NewValidationError("customer.name", "is required"))
	}

	seen := make(map[kernel.UUID]struct{}, len(c.Materials))
	for i, item := range c.Materials {
		param := fmt.Sprintf("materials[%d]", i)
		if err := item.ID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("%s.id: %w", param, err))
		} else if _, dup := seen[item.ID]; dup {
			errList = append(errList, errs.NewValidationError(param+".id", "is used by more than one line item"))
		}
		seen[item.ID] = struct{}{}

		if item.Name == "" {
			errList = append(errList, errs.NewValidationError(param+".name", "is required for every line item"))
		}
		if err := item.Quantity.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("%s.quantity: %w", param, err))
		}
		if err := item.CustomerUnitPrice.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("%s.customerUnitPrice: %w", param, err))
		}
		if item.SupplierUnitPrice != nil {
			if err := item.SupplierUnitPrice.Validate(); err != nil {
				errList = append(errList, fmt.Errorf("%s.supplierUnitPrice: %w", param, err))
			}
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(decimal.NewFromInt(100)) ||
			!item.TaxRate.Equal(item.TaxRate.Truncate(kernel.MaxScale)) {
			errList = append(errList, errs.NewValueIsOutOfRangeError(param+".taxRate", item.TaxRate.String(), 0, 100))
		}
	}

	return errors.Join(errList...)
}

// Clone returns a deep copy; pointer fields and the materials slice are not shared.
func (c Content) Clone() Content {
	clone := c
	if c.PriceFromSupplier != nil {
		price := *c.PriceFromSupplier
		clone.PriceFromSupplier = &price
	}
	if c.Supplier != nil {
		supplier := *c.Supplier
		clone.Supplier = &supplier
	}
	if c.FreightHandler != nil {
		handler := *c.FreightHandler
		clone.FreightHandler = &handler
	}
	clone.Materials = make([]MaterialItem, len(c.Materials))
	for i, item := range c.Materials {
		clone.Materials[i] = item
		if item.SupplierUnitPrice != nil {
			price := *item.SupplierUnitPrice
			clone.Materials[i].SupplierUnitPrice = &price
		}
	}
	return clone
}

// Material looks a line item up by its stable id.
func (c Content) Material(id kernel.UUID) (MaterialItem, int, bool) {
	idx := slices.IndexFunc(c.Materials, func(item MaterialItem) bool { return item.ID.IsEqual(id) })
	if idx < 0 {
		return MaterialItem{}, -1, false
	}
	return c.Materials[idx], idx, true
}
