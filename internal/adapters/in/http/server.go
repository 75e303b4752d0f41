// Package http exposes the order workflow as the JSON API described by
// openapi.yaml.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"procurement/internal/core/application/notifications"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PendingFieldChangesHandler is implemented by queries.GetPendingFieldChangesQueryHandler.
type PendingFieldChangesHandler interface {
	Handle(ctx context.Context, query queries.GetPendingFieldChangesQuery) ([]queries.PendingFieldChange, error)
}

// ListOrdersHandler is implemented by queries.ListOrdersQueryHandler.
type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
}

// Notifier is implemented by *notifications.Notifier.
type Notifier interface {
	Notify(ctx context.Context, notifications ...ports.Notification) int
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	ChangeStatus         commands.ChangeStatusCommandHandler
	SubmitEdit           commands.SubmitEditCommandHandler
	ResolvePendingChange commands.ResolvePendingChangeCommandHandler
	GetOrder             queries.GetOrderQueryHandler
	ListOrders           ListOrdersHandler
	PendingFieldChanges  PendingFieldChangesHandler
}

// Server implements ServerInterface. It coordinates between HTTP handlers,
// application use cases and the notification fan-out.
type Server struct {
	handlers Handlers
	engine   services.TransitionEngine
	composer notifications.Composer
	notifier Notifier
	metrics  *Metrics
	retry    RetryPolicy
	logger   *slog.Logger
}

func NewServer(
	handlers Handlers,
	engine services.TransitionEngine,
	notifier Notifier,
	metrics *Metrics,
	retry RetryPolicy,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		engine:   engine,
		composer: notifications.NewComposer(),
		notifier: notifier,
		metrics:  metrics,
		retry:    retry,
		logger:   logger.With("component", "http"),
	}
}

var _ ServerInterface = (*Server)(nil)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var filter queries.ListOrdersFilter
	if params.Status != nil {
		status, err := order.ParseStatus(*params.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown status filter")
		}
		filter.Status = &status
	}
	if params.Entity != nil {
		filter.Entity = *params.Entity
	}
	if params.CreatedBy != nil {
		filter.CreatedByID = *params.CreatedBy
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	summaries, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderSummariesResponse(summaries))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context, params ActorHeaders) error {
	created, err := s.createOrder(ctx, params)
	s.metrics.observe("create_order", err)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created, nil))
}

func (s *Server) createOrder(ctx echo.Context, params ActorHeaders) (*order.Order, error) {
	actor, err := actorFromHeaders(params)
	if err != nil {
		return nil, err
	}

	var body OrderContent
	if err = ctx.Bind(&body); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	content, err := body.toDomain()
	if err != nil {
		return nil, err
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), content, actor)
	if err != nil {
		return nil, err
	}
	return s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	view, err := s.getOrder(ctx.Request().Context(), orderId)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view.Order, &view.Version))
}

func (s *Server) getOrder(ctx context.Context, orderId openapi_types.UUID) (queries.GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	return s.handlers.GetOrder.Handle(ctx, query)
}

// SubmitOrderEdit handles PUT /api/v1/orders/{orderId}. It is never retried:
// the proposal was built against the version the client saw.
func (s *Server) SubmitOrderEdit(ctx echo.Context, orderId openapi_types.UUID, params ActorHeaders) error {
	result, err := s.submitEdit(ctx, orderId, params)
	s.metrics.observe("submit_edit", err)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if result.Locked {
		s.notifier.Notify(ctx.Request().Context(), s.composer.FieldChangesPending(result.Committed)...)
	}

	return ctx.JSON(http.StatusOK, EditResult{
		Locked:  result.Locked,
		Changes: toFieldChangesResponse(result.Changes),
		Order:   toOrderResponse(result.Committed, nil),
	})
}

func (s *Server) submitEdit(ctx echo.Context, orderId openapi_types.UUID, params ActorHeaders) (services.ApplyResult, error) {
	actor, err := actorFromHeaders(params)
	if err != nil {
		return services.ApplyResult{}, err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return services.ApplyResult{}, err
	}

	var body OrderContent
	if err = ctx.Bind(&body); err != nil {
		return services.ApplyResult{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	proposed, err := body.toDomain()
	if err != nil {
		return services.ApplyResult{}, err
	}

	cmd, err := commands.NewSubmitEditCommand(id, proposed, actor)
	if err != nil {
		return services.ApplyResult{}, err
	}
	return s.handlers.SubmitEdit.Handle(ctx.Request().Context(), cmd)
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID, params ActorHeaders) error {
	cmd, err := s.changeStatusCommand(ctx, orderId, params)
	if err != nil {
		s.metrics.observe("change_status", err)
		return s.errorResponse(ctx, err)
	}

	reqCtx := ctx.Request().Context()
	moved, err := s.withRetry(reqCtx, "change_status", func() (*order.Order, error) {
		return s.handlers.ChangeStatus.Handle(reqCtx, cmd)
	})
	s.metrics.observe("change_status", err)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	s.notifier.Notify(reqCtx, s.composer.StatusChanged(moved, cmd.Options(), lastEventAt(moved))...)

	return ctx.JSON(http.StatusOK, toOrderResponse(moved, nil))
}

func (s *Server) changeStatusCommand(
	ctx echo.Context,
	orderId openapi_types.UUID,
	params ActorHeaders,
) (commands.ChangeStatusCommand, error) {
	actor, err := actorFromHeaders(params)
	if err != nil {
		return commands.ChangeStatusCommand{}, err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return commands.ChangeStatusCommand{}, err
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return commands.ChangeStatusCommand{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	target, err := order.ParseStatus(body.TargetStatus)
	if err != nil {
		return commands.ChangeStatusCommand{}, err
	}

	return commands.NewChangeStatusCommand(id, target, actor, order.StatusChangeOptions{
		ApproverIdentity: body.ApproverIdentity,
		Note:             body.Note,
	})
}

// ResolvePendingChange handles POST /api/v1/orders/{orderId}/pending-change/resolve.
func (s *Server) ResolvePendingChange(ctx echo.Context, orderId openapi_types.UUID, params ActorHeaders) error {
	cmd, err := s.resolveCommand(ctx, orderId, params)
	if err != nil {
		s.metrics.observe("resolve_pending_change", err)
		return s.errorResponse(ctx, err)
	}

	reqCtx := ctx.Request().Context()
	resolved, err := s.withRetry(reqCtx, "resolve_pending_change", func() (*order.Order, error) {
		return s.handlers.ResolvePendingChange.Handle(reqCtx, cmd)
	})
	s.metrics.observe("resolve_pending_change", err)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	s.notifier.Notify(reqCtx, s.composer.FieldChangesResolved(resolved)...)

	return ctx.JSON(http.StatusOK, toOrderResponse(resolved, nil))
}

func (s *Server) resolveCommand(
	ctx echo.Context,
	orderId openapi_types.UUID,
	params ActorHeaders,
) (commands.ResolvePendingChangeCommand, error) {
	approver, err := actorFromHeaders(params)
	if err != nil {
		return commands.ResolvePendingChangeCommand{}, err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return commands.ResolvePendingChangeCommand{}, err
	}

	var body Resolution
	if err = ctx.Bind(&body); err != nil {
		return commands.ResolvePendingChangeCommand{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	decision, err := order.ParseDecision(body.Decision)
	if err != nil {
		return commands.ResolvePendingChangeCommand{}, err
	}

	return commands.NewResolvePendingChangeCommand(id, decision, approver)
}

// GetAvailableTransitions handles GET /api/v1/orders/{orderId}/transitions.
// A locked order offers no transitions until its request is resolved.
func (s *Server) GetAvailableTransitions(
	ctx echo.Context,
	orderId openapi_types.UUID,
	params GetAvailableTransitionsParams,
) error {
	role, err := kernel.ParseRole(string(params.Role))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	view, err := s.getOrder(ctx.Request().Context(), orderId)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if view.Order.IsLocked() {
		return ctx.JSON(http.StatusOK, []Transition{})
	}
	return ctx.JSON(http.StatusOK, toTransitionsResponse(s.engine.Available(view.Order.Status(), role)))
}

// ListPendingFieldChanges handles GET /api/v1/field-change-requests.
func (s *Server) ListPendingFieldChanges(ctx echo.Context, params ListPendingFieldChangesParams) error {
	if params.Status != nil && *params.Status != PendingStatusFilter {
		return echo.NewHTTPError(http.StatusBadRequest, "Only pending requests can be listed")
	}

	var requestedBefore time.Time
	if params.RequestedBefore != nil {
		requestedBefore = *params.RequestedBefore
	}

	pending, err := s.handlers.PendingFieldChanges.Handle(ctx.Request().Context(),
		queries.NewGetPendingFieldChangesQuery(requestedBefore))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPendingResponse(pending))
}

func (s *Server) withRetry(ctx context.Context, operation string, op func() (*order.Order, error)) (*order.Order, error) {
	attempt := 0
	return retryOnConflict(ctx, s.retry, func() (*order.Order, error) {
		if attempt > 0 {
			s.metrics.retried(operation)
		}
		attempt++
		return op()
	})
}

func lastEventAt(o *order.Order) time.Time {
	timeline := o.Timeline()
	if len(timeline) == 0 {
		return o.CreatedAt()
	}
	return timeline[len(timeline)-1].At
}
