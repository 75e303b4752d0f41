package commands

import (
	"context"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"
)

// ChangeStatusCommandHandler applies a role-gated status change.
//
// Example:
//
//	handler := NewChangeStatusCommandHandler(uowFactory, services.NewTransitionEngine(), nil)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrOrderIsLocked):
//	    // a field change request must be resolved first
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    // reload and retry
//	}
type ChangeStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.TransitionEngine
	clock      Clock
}

func NewChangeStatusCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.TransitionEngine,
	clock Clock,
) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
	}
}

// Handle loads the order, rejects it while locked, checks the transition and
// stores the moved snapshot. The returned order is what was written.
func (h ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*order.Order, error) {
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
	baseline, version, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if baseline.IsLocked() {
		return nil, errs.NewLockedOrderError(baseline.ID().String(), baseline.FieldChangeRequest().ID().String())
	}

	next, err := h.engine.Attempt(baseline, cmd.Target(), cmd.Actor().Role(), cmd.Options())
	if err != nil {
		return nil, err
	}

	updated := baseline.Clone()
	if err = updated.MoveTo(next, cmd.Actor(), cmd.Options(), h.clock.now()); err != nil {
		return nil, err
	}

	if _, err = repo.CompareAndSwap(ctx, version, updated); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
