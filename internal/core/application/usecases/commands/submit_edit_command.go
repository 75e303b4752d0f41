package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrSubmitEditCommandIsNotConstructed = errors.New(
	"SubmitEditCommand must be created via NewSubmitEditCommand constructor",
)

// SubmitEditCommand carries the full proposed content of an order edit.
type SubmitEditCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	proposed order.Content
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewSubmitEditCommand(orderID kernel.UUID, proposed order.Content, actor kernel.Actor) (SubmitEditCommand, error) {
	cmd := SubmitEditCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProposed(proposed),
		cmd.setActor(actor),
	); err != nil {
		return SubmitEditCommand{}, err
	}

	return cmd, nil
}

func (c SubmitEditCommand) Validate() error {
	return c.guard.Validate(ErrSubmitEditCommandIsNotConstructed)
}

func (c SubmitEditCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SubmitEditCommand) Proposed() order.Content {
	return c.proposed.Clone()
}

func (c SubmitEditCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *SubmitEditCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitEditCommand) setProposed(proposed order.Content) error {
	if err := proposed.Validate(); err != nil {
		return err
	}
	c.proposed = proposed.Clone()
	return nil
}

func (c *SubmitEditCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
