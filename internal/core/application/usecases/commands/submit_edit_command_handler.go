package commands

import (
	"context"

	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"
)

// SubmitEditCommandHandler diffs a proposed edit against the stored order and
// either commits it or freezes it into a pending field change request.
type SubmitEditCommandHandler struct {
	uowFactory OrderUoWFactory
	manager    services.ApprovalLockManager
	clock      Clock
}

func NewSubmitEditCommandHandler(
	uowFactory OrderUoWFactory,
	manager services.ApprovalLockManager,
	clock Clock,
) SubmitEditCommandHandler {
	return SubmitEditCommandHandler{
		uowFactory: uowFactory,
		manager:    manager,
		clock:      clock,
	}
}

// Handle returns the result of the submission. An edit without any change is
// not written at all.
func (h SubmitEditCommandHandler) Handle(ctx context.Context, cmd SubmitEditCommand) (services.ApplyResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.ApplyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.ApplyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	baseline, version, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.ApplyResult{}, err
	}

	if baseline.IsLocked() {
		return services.ApplyResult{}, errs.NewLockedOrderError(baseline.ID().String(),
			baseline.FieldChangeRequest().ID().String())
	}

	proposed, err := baseline.WithContent(cmd.Proposed())
	if err != nil {
		return services.ApplyResult{}, err
	}

	result, err := h.manager.Submit(baseline, proposed, cmd.Actor(), h.clock.now())
	if err != nil {
		return services.ApplyResult{}, err
	}
	if !result.HasChanges() {
		return result, nil
	}

	if _, err = repo.CompareAndSwap(ctx, version, result.Committed); err != nil {
		return services.ApplyResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.ApplyResult{}, err
	}

	return result, nil
}
