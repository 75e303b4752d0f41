// Package orderrepo maps order aggregates to PostgreSQL tables and back.
//
// An order is spread over five tables: orders (scalar content, lock flag and
// version), order_materials, the append-only order_timeline_events and
// order_audit_logs, and field_change_requests. Nested records that are never
// queried on their own (supplier, freight handler, request snapshots) are
// stored as jsonb.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is a row of the orders table. Version is the compare-and-swap token.
type OrderDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version int64     `gorm:"not null"`
	Status  int       `gorm:"not null;index"`

	Entity       string `gorm:"size:64"`
	MaterialName string
	PONumber     string      `gorm:"column:po_number;size:64;index"`
	Quantity     QuantityDTO `gorm:"embedded;embeddedPrefix:quantity_"`
	TransitType  string      `gorm:"size:64"`

	PriceToCustomer           MoneyDTO            `gorm:"embedded;embeddedPrefix:price_to_customer_"`
	PriceFromSupplierAmount   decimal.NullDecimal `gorm:"type:decimal(20,4)"`
	PriceFromSupplierCurrency *string             `gorm:"size:3"`

	Customer       ContactDTO                             `gorm:"embedded;embeddedPrefix:customer_"`
	Supplier       datatypes.JSONType[*ContactDTO]        `gorm:"type:jsonb"`
	FreightHandler datatypes.JSONType[*FreightHandlerDTO] `gorm:"type:jsonb"`

	IsLocked         bool       `gorm:"not null;default:false"`
	CurrentRequestID *uuid.UUID `gorm:"type:uuid"`

	CreatedBy ActorDTO `gorm:"embedded;embeddedPrefix:created_by_"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Materials []MaterialDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// MaterialDTO is a line item row. Position keeps the submitted order.
type MaterialDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"not null"`
	Name     string    `gorm:"not null"`

	Quantity                  QuantityDTO         `gorm:"embedded;embeddedPrefix:quantity_"`
	CustomerUnitPrice         MoneyDTO            `gorm:"embedded;embeddedPrefix:customer_unit_price_"`
	SupplierUnitPriceAmount   decimal.NullDecimal `gorm:"type:decimal(20,4)"`
	SupplierUnitPriceCurrency *string             `gorm:"size:3"`
	TaxRate                   decimal.Decimal     `gorm:"type:decimal(7,4)"`
}

func (MaterialDTO) TableName() string {
	return "order_materials"
}

// TimelineEventDTO is never updated. Seq is the position in the trail.
type TimelineEventDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index:idx_timeline_order_seq,priority:1"`
	Seq     int       `gorm:"not null;index:idx_timeline_order_seq,priority:2"`
	Event   string    `gorm:"size:64;not null"`
	Details string
	Status  int
	Actor   ActorDTO `gorm:"embedded;embeddedPrefix:actor_"`
	At      time.Time
}

func (TimelineEventDTO) TableName() string {
	return "order_timeline_events"
}

// AuditLogDTO is never updated. Seq is the position in the trail.
type AuditLogDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_order_seq,priority:1"`
	Seq      int       `gorm:"not null;index:idx_audit_order_seq,priority:2"`
	Field    string    `gorm:"not null"`
	OldValue string
	NewValue string
	Actor    ActorDTO `gorm:"embedded;embeddedPrefix:actor_"`
	At       time.Time
	Note     string
}

func (AuditLogDTO) TableName() string {
	return "order_audit_logs"
}

// FieldChangeRequestDTO keeps every request ever opened; terminal rows are
// not deleted. Baseline and Proposed are the literal content snapshots.
type FieldChangeRequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestedBy ActorDTO  `gorm:"embedded;embeddedPrefix:requested_by_"`
	RequestedAt time.Time `gorm:"not null;index"`
	Status      int       `gorm:"not null;index"`

	ResolvedByID   *string `gorm:"size:128"`
	ResolvedByName *string
	ResolvedByRole *int
	ResolvedAt     *time.Time

	Fields   datatypes.JSONType[[]FieldChangeDTO] `gorm:"type:jsonb;not null"`
	Baseline datatypes.JSONType[ContentDTO]       `gorm:"type:jsonb;not null"`
	Proposed datatypes.JSONType[ContentDTO]       `gorm:"type:jsonb;not null"`
}

func (FieldChangeRequestDTO) TableName() string {
	return "field_change_requests"
}

// ActorDTO is embedded wherever an actor is recorded.
type ActorDTO struct {
	ID   string `gorm:"size:128"`
	Name string
	Role int
}

type MoneyDTO struct {
	Amount   decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount"`
	Currency string          `gorm:"size:3"             json:"currency"`
}

type QuantityDTO struct {
	Value decimal.Decimal `gorm:"type:decimal(20,4)" json:"value"`
	Unit  string          `gorm:"size:32"            json:"unit"`
}

// ContactDTO is embedded for the customer and stored as jsonb for the supplier.
type ContactDTO struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	GSTIN   string `gorm:"column:gstin" json:"gstin,omitempty"`
}

type FreightHandlerDTO struct {
	Name              string `json:"name,omitempty"`
	Company           string `json:"company,omitempty"`
	Address           string `json:"address,omitempty"`
	Country           string `json:"country,omitempty"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	ContactPerson     string `json:"contactPerson,omitempty"`
	GSTIN             string `json:"gstin,omitempty"`
	TrackingNumber    string `json:"trackingNumber,omitempty"`
	ShippingMethod    string `json:"shippingMethod,omitempty"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
}

// FieldChangeDTO stores the field identifier by name so that reordering the
// enum never corrupts stored requests.
type FieldChangeDTO struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// ContentDTO is the jsonb form of a content snapshot.
type ContentDTO struct {
	Entity            string             `json:"entity"`
	MaterialName      string             `json:"materialName"`
	PONumber          string             `json:"poNumber"`
	Quantity          QuantityDTO        `json:"quantity"`
	TransitType       string             `json:"transitType"`
	PriceToCustomer   MoneyDTO           `json:"priceToCustomer"`
	PriceFromSupplier *MoneyDTO          `json:"priceFromSupplier,omitempty"`
	Customer          ContactDTO         `json:"customer"`
	Supplier          *ContactDTO        `json:"supplier,omitempty"`
	FreightHandler    *FreightHandlerDTO `json:"freightHandler,omitempty"`
	Materials         []MaterialJSONDTO  `json:"materials"`
}

type MaterialJSONDTO struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Quantity          QuantityDTO     `json:"quantity"`
	CustomerUnitPrice MoneyDTO        `json:"customerUnitPrice"`
	SupplierUnitPrice *MoneyDTO       `json:"supplierUnitPrice,omitempty"`
	TaxRate           decimal.Decimal `json:"taxRate"`
}
