package order

// FieldID is the closed set of field identifiers a diff can report. Approval
// policy is attached to the identifier, never to the human readable label.
type FieldID int

const (
	FieldUnknown FieldID = iota
	FieldEntity
	FieldMaterialName
	FieldPONumber
	FieldQuantity
	FieldTransitType
	FieldPriceToCustomer
	FieldPriceFromSupplier
	FieldCustomerDetail
	FieldSupplier
	FieldSupplierDetail
	FieldLineItemName
	FieldLineItemQuantity
	FieldLineItemCustomerUnitPrice
	FieldLineItemSupplierUnitPrice
	FieldLineItemTaxRate
	FieldMaterialAdded
	FieldMaterialsRemoved
	FieldFreightHandler
	FieldFreightHandlerDetail
)

func getFieldIDStrings() map[FieldID]string {
	return map[FieldID]string{
		FieldUnknown:                   "unknown",
		FieldEntity:                    "entity",
		FieldMaterialName:              "materialName",
		FieldPONumber:                  "poNumber",
		FieldQuantity:                  "quantity",
		FieldTransitType:               "transitType",
		FieldPriceToCustomer:           "priceToCustomer",
		FieldPriceFromSupplier:         "priceFromSupplier",
		FieldCustomerDetail:            "customerDetail",
		FieldSupplier:                  "supplier",
		FieldSupplierDetail:            "supplierDetail",
		FieldLineItemName:              "lineItemName",
		FieldLineItemQuantity:          "lineItemQuantity",
		FieldLineItemCustomerUnitPrice: "lineItemCustomerUnitPrice",
		FieldLineItemSupplierUnitPrice: "lineItemSupplierUnitPrice",
		FieldLineItemTaxRate:           "lineItemTaxRate",
		FieldMaterialAdded:             "materialAdded",
		FieldMaterialsRemoved:          "materialsRemoved",
		FieldFreightHandler:            "freightHandler",
		FieldFreightHandlerDetail:      "freightHandlerDetail",
	}
}

func (f FieldID) String() string {
	if s, ok := getFieldIDStrings()[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFieldID is the inverse of String, used when restoring persisted requests.
func ParseFieldID(s string) FieldID {
	for id, name := range getFieldIDStrings() {
		if name == s {
			return id
		}
	}
	return FieldUnknown
}

// IsProtected reports whether a post-threshold change to the field must be
// approved: quantities, unit prices, material identity and material count.
func (f FieldID) IsProtected() bool {
	switch f {
	case FieldQuantity,
		FieldPriceToCustomer,
		FieldPriceFromSupplier,
		FieldMaterialName,
		FieldLineItemName,
		FieldLineItemQuantity,
		FieldLineItemCustomerUnitPrice,
		FieldLineItemSupplierUnitPrice,
		FieldMaterialAdded,
		FieldMaterialsRemoved:
		return true
	default:
		return false
	}
}

// FieldChange is one human readable line of a diff, e.g.
// {Quantity, "Material 2 - Quantity", "100 KG", "150 KG"}.
type FieldChange struct {
	Field    FieldID
	Label    string
	OldValue string
	NewValue string
}

// ProtectedChanges keeps the changes whose field requires approval, in order.
func ProtectedChanges(changes []FieldChange) []FieldChange {
	protected := make([]FieldChange, 0, len(changes))
	for _, change := range changes {
		if change.Field.IsProtected() {
			protected = append(protected, change)
		}
	}
	return protected
}
