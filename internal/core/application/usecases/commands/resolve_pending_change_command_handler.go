package commands

import (
	"context"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
)

// ResolvePendingChangeCommandHandler approves or rejects a pending field
// change request. Resolving twice fails with errs.NotPendingError and writes nothing.
type ResolvePendingChangeCommandHandler struct {
	uowFactory OrderUoWFactory
	manager    services.ApprovalLockManager
	clock      Clock
}

func NewResolvePendingChangeCommandHandler(
	uowFactory OrderUoWFactory,
	manager services.ApprovalLockManager,
	clock Clock,
) ResolvePendingChangeCommandHandler {
	return ResolvePendingChangeCommandHandler{
		uowFactory: uowFactory,
		manager:    manager,
		clock:      clock,
	}
}

func (h ResolvePendingChangeCommandHandler) Handle(
	ctx context.Context,
	cmd ResolvePendingChangeCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, version, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	resolved, err := h.manager.Resolve(current, cmd.Decision(), cmd.Approver(), h.clock.now())
	if err != nil {
		return nil, err
	}

	if _, err = repo.CompareAndSwap(ctx, version, resolved); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return resolved, nil
}
