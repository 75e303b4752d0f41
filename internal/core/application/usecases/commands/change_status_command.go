package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrChangeStatusCommandIsNotConstructed = errors.New(
	"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
)

// ChangeStatusCommand moves an order to another lifecycle stage.
//
// Example:
//
//	cmd, err := NewChangeStatusCommand(orderID, order.SentPOForApproval, actor,
//	    order.StatusChangeOptions{ApproverIdentity: "meera@hrv.example"})
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   kernel.Actor
	options order.StatusChangeOptions

	guard guard.ConstructorGuard
}

func NewChangeStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actor kernel.Actor,
	options order.StatusChangeOptions,
) (ChangeStatusCommand, error) {
	cmd := ChangeStatusCommand{
		guard: guard.NewConstructorGuard(),
		options: order.StatusChangeOptions{
			ApproverIdentity: strings.TrimSpace(options.ApproverIdentity),
			Note:             strings.TrimSpace(options.Note),
		},
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return ChangeStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

func (c ChangeStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeStatusCommand) Target() order.Status {
	return c.target
}

func (c ChangeStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ChangeStatusCommand) Options() order.StatusChangeOptions {
	return c.options
}

func (c *ChangeStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ChangeStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
