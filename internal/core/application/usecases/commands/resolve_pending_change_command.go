package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrResolvePendingChangeCommandIsNotConstructed = errors.New(
	"ResolvePendingChangeCommand must be created via NewResolvePendingChangeCommand constructor",
)

// ResolvePendingChangeCommand approves or rejects the pending field change
// request of an order. The approver's authority is checked by the aggregate,
// after the pending state, so the command accepts any role.
type ResolvePendingChangeCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	decision order.Decision
	approver kernel.Actor

	guard guard.ConstructorGuard
}

func NewResolvePendingChangeCommand(
	orderID kernel.UUID,
	decision order.Decision,
	approver kernel.Actor,
) (ResolvePendingChangeCommand, error) {
	cmd := ResolvePendingChangeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDecision(decision),
		cmd.setApprover(approver),
	); err != nil {
		return ResolvePendingChangeCommand{}, err
	}

	return cmd, nil
}

func (c ResolvePendingChangeCommand) Validate() error {
	return c.guard.Validate(ErrResolvePendingChangeCommandIsNotConstructed)
}

func (c ResolvePendingChangeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ResolvePendingChangeCommand) Decision() order.Decision {
	return c.decision
}

func (c ResolvePendingChangeCommand) Approver() kernel.Actor {
	return c.approver
}

func (c *ResolvePendingChangeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ResolvePendingChangeCommand) setDecision(decision order.Decision) error {
	if decision != order.DecisionApprove && decision != order.DecisionReject {
		return errs.NewValueIsInvalidError("decision")
	}
	c.decision = decision
	return nil
}

func (c *ResolvePendingChangeCommand) setApprover(approver kernel.Actor) error {
	if err := approver.Validate(); err != nil {
		return err
	}
	c.approver = approver
	return nil
}
