package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Wire types of openapi.yaml. Optional scalars are plain values with
// omitempty; optional objects are pointers.

type Role string

const (
	RoleEmployee   Role = "Employee"
	RoleManager    Role = "Manager"
	RoleManagement Role = "Management"
	RoleAdmin      Role = "Admin"
)

// PendingStatusFilter is the only status the field change request list serves.
const PendingStatusFilter = "pending"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type Quantity struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

type Contact struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

type FreightHandler struct {
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

type Material struct {
	Id                *openapi_types.UUID `json:"id,omitempty"`
	Name              string              `json:"name"`
	Quantity          Quantity            `json:"quantity"`
	CustomerUnitPrice Money               `json:"customerUnitPrice"`
	SupplierUnitPrice *Money              `json:"supplierUnitPrice,omitempty"`
	TaxRate           *decimal.Decimal    `json:"taxRate,omitempty"`
}

type OrderContent struct {
	Entity            string          `json:"entity,omitempty"`
	MaterialName      string          `json:"materialName,omitempty"`
	PoNumber          string          `json:"poNumber,omitempty"`
	Quantity          Quantity        `json:"quantity"`
	TransitType       string          `json:"transitType,omitempty"`
	PriceToCustomer   Money           `json:"priceToCustomer"`
	PriceFromSupplier *Money          `json:"priceFromSupplier,omitempty"`
	Customer          Contact         `json:"customer"`
	Supplier          *Contact        `json:"supplier,omitempty"`
	FreightHandler    *FreightHandler `json:"freightHandler,omitempty"`
	Materials         []Material      `json:"materials"`
}

type StatusChange struct {
	TargetStatus     string `json:"targetStatus"`
	ApproverIdentity string `json:"approverIdentity,omitempty"`
	Note             string `json:"note,omitempty"`
}

type Resolution struct {
	Decision string `json:"decision"`
}

type Actor struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type FieldChange struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

type FieldChangeRequest struct {
	Id          openapi_types.UUID `json:"id"`
	Status      string             `json:"status"`
	RequestedBy Actor              `json:"requestedBy"`
	RequestedAt time.Time          `json:"requestedAt"`
	ResolvedBy  *Actor             `json:"resolvedBy,omitempty"`
	ResolvedAt  *time.Time         `json:"resolvedAt,omitempty"`
	Fields      []FieldChange      `json:"fields"`
	Summary     string             `json:"summary"`
}

type TimelineEvent struct {
	Event   string    `json:"event"`
	Details string    `json:"details"`
	Status  string    `json:"status"`
	Actor   Actor     `json:"actor"`
	At      time.Time `json:"at"`
}

type AuditEntry struct {
	Field    string    `json:"field"`
	OldValue string    `json:"oldValue"`
	NewValue string    `json:"newValue"`
	Actor    Actor     `json:"actor"`
	At       time.Time `json:"at"`
	Note     string    `json:"note,omitempty"`
}

type Order struct {
	Id                 openapi_types.UUID  `json:"id"`
	Version            *int64              `json:"version,omitempty"`
	Status             string              `json:"status"`
	StatusLabel        string              `json:"statusLabel"`
	IsLocked           bool                `json:"isLocked"`
	Content            OrderContent        `json:"content"`
	CreatedBy          Actor               `json:"createdBy"`
	CreatedAt          time.Time           `json:"createdAt"`
	FieldChangeRequest *FieldChangeRequest `json:"fieldChangeRequest,omitempty"`
	Timeline           []TimelineEvent     `json:"timeline"`
	AuditLogs          []AuditEntry        `json:"auditLogs"`
}

type EditResult struct {
	Locked  bool          `json:"locked"`
	Changes []FieldChange `json:"changes"`
	Order   Order         `json:"order"`
}

type Transition struct {
	To               string `json:"to"`
	Label            string `json:"label"`
	Description      string `json:"description"`
	RequiresEntity   bool   `json:"requiresEntity"`
	RequiresApprover bool   `json:"requiresApprover"`
}

type PendingFieldChange struct {
	RequestId    openapi_types.UUID `json:"requestId"`
	OrderId      openapi_types.UUID `json:"orderId"`
	PoNumber     string             `json:"poNumber,omitempty"`
	CustomerName string             `json:"customerName,omitempty"`
	RequestedBy  string             `json:"requestedBy,omitempty"`
	RequestedAt  time.Time          `json:"requestedAt"`
	FieldCount   int                `json:"fieldCount"`
}

type OrderSummary struct {
	Id           openapi_types.UUID `json:"id"`
	PoNumber     string             `json:"poNumber,omitempty"`
	Entity       string             `json:"entity,omitempty"`
	CustomerName string             `json:"customerName,omitempty"`
	Status       string             `json:"status"`
	StatusLabel  string             `json:"statusLabel"`
	IsLocked     bool               `json:"isLocked"`
	CreatedBy    string             `json:"createdBy,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ActorHeaders identifies the caller of a mutating operation.
type ActorHeaders struct {
	XUserId   string
	XUserName string
	XUserRole Role
}

type GetAvailableTransitionsParams struct {
	Role Role `form:"role" json:"role"`
}

type ListOrdersParams struct {
	Status    *string `form:"status,omitempty" json:"status,omitempty"`
	Entity    *string `form:"entity,omitempty" json:"entity,omitempty"`
	CreatedBy *string `form:"createdBy,omitempty" json:"createdBy,omitempty"`
}

type ListPendingFieldChangesParams struct {
	Status          *string    `form:"status,omitempty" json:"status,omitempty"`
	RequestedBefore *time.Time `form:"requestedBefore,omitempty" json:"requestedBefore,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params ActorHeaders) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /api/v1/orders/{orderId})
	SubmitOrderEdit(ctx echo.Context, orderId openapi_types.UUID, params ActorHeaders) error
	// (POST /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID, params ActorHeaders) error
	// (POST /api/v1/orders/{orderId}/pending-change/resolve)
	ResolvePendingChange(ctx echo.Context, orderId openapi_types.UUID, params ActorHeaders) error
	// (GET /api/v1/orders/{orderId}/transitions)
	GetAvailableTransitions(ctx echo.Context, orderId openapi_types.UUID, params GetAvailableTransitionsParams) error
	// (GET /api/v1/field-change-requests)
	ListPendingFieldChanges(ctx echo.Context, params ListPendingFieldChangesParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, false, "entity", ctx.QueryParams(), &params.Entity)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter entity: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, false, "createdBy", ctx.QueryParams(), &params.CreatedBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter createdBy: %s", err))
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	params, err := bindActorHeaders(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateOrder(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) SubmitOrderEdit(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	params, err := bindActorHeaders(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SubmitOrderEdit(ctx, orderId, params)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	params, err := bindActorHeaders(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderId, params)
}

func (w *ServerInterfaceWrapper) ResolvePendingChange(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	params, err := bindActorHeaders(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ResolvePendingChange(ctx, orderId, params)
}

func (w *ServerInterfaceWrapper) GetAvailableTransitions(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	var params GetAvailableTransitionsParams
	err = runtime.BindQueryParameter("form", true, true, "role", ctx.QueryParams(), &params.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter role: %s", err))
	}
	return w.Handler.GetAvailableTransitions(ctx, orderId, params)
}

func (w *ServerInterfaceWrapper) ListPendingFieldChanges(ctx echo.Context) error {
	var params ListPendingFieldChangesParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, false, "requestedBefore", ctx.QueryParams(), &params.RequestedBefore)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter requestedBefore: %s", err))
	}
	return w.Handler.ListPendingFieldChanges(ctx, params)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderId openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

func bindActorHeaders(ctx echo.Context) (ActorHeaders, error) {
	var params ActorHeaders
	headers := ctx.Request().Header

	if err := bindHeader(headers, "X-User-Id", &params.XUserId); err != nil {
		return params, err
	}
	if err := bindHeader(headers, "X-User-Name", &params.XUserName); err != nil {
		return params, err
	}
	if err := bindHeader(headers, "X-User-Role", &params.XUserRole); err != nil {
		return params, err
	}
	return params, nil
}

func bindHeader(headers http.Header, name string, dest any) error {
	valueList, found := headers[http.CanonicalHeaderKey(name)]
	if !found {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Header parameter %s is required, but not found", name))
	}
	if n := len(valueList); n != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for %s, got %d", name, n))
	}

	err := runtime.BindStyledParameterWithOptions("simple", name, valueList[0], dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId", wrapper.SubmitOrderEdit)
	router.POST(baseURL+"/api/v1/orders/:orderId/status", wrapper.ChangeOrderStatus)
	router.POST(baseURL+"/api/v1/orders/:orderId/pending-change/resolve", wrapper.ResolvePendingChange)
	router.GET(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.GetAvailableTransitions)
	router.GET(baseURL+"/api/v1/field-change-requests", wrapper.ListPendingFieldChanges)
}
