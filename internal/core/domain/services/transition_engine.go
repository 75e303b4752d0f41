package services

import (
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// TransitionEngine validates status changes against the static transition table.
//
// Example:
//
//	engine := services.NewTransitionEngine()
//	next, err := engine.Attempt(o, order.SentPOForApproval, kernel.RoleEmployee,
//	    order.StatusChangeOptions{ApproverIdentity: "meera@hrv.example"})
//	if err != nil {
//	    return err
//	}
//	err = o.MoveTo(next, actor, opts, now)
type TransitionEngine struct {
	rules []order.TransitionRule
}

func NewTransitionEngine() TransitionEngine {
	return TransitionEngine{rules: order.TransitionRules()}
}

// Attempt returns the target status when the move is legal for role.
//
// Checks, in order:
//   - the target is a known status
//   - a (from, to, role) rule exists, otherwise InvalidTransitionError
//   - the rule's preconditions hold, otherwise ValidationError
//
// Attempt does not look at the lock; callers reject locked orders first.
func (e TransitionEngine) Attempt(
	o *order.Order,
	target order.Status,
	role kernel.Role,
	opts order.StatusChangeOptions,
) (order.Status, error) {
	if err := o.Validate(); err != nil {
		return order.Unknown, err
	}
	if err := target.Validate(); err != nil {
		return order.Unknown, err
	}

	rule, ok := e.find(o.Status(), target, role)
	if !ok {
		return order.Unknown, errs.NewInvalidTransitionError(o.Status().String(), target.String(), role.String())
	}

	if rule.RequiresEntity && strings.TrimSpace(o.Content().Entity) == "" {
		return order.Unknown, errs.NewValidationError("entity",
			"is required before moving to "+target.Label())
	}
	if rule.RequiresApprover && strings.TrimSpace(opts.ApproverIdentity) == "" {
		return order.Unknown, errs.NewValidationError("approverIdentity",
			"is required before moving to "+target.Label())
	}

	return target, nil
}

// Available lists the rules role may apply from the given status, in table order.
func (e TransitionEngine) Available(from order.Status, role kernel.Role) []order.TransitionRule {
	var available []order.TransitionRule
	for _, rule := range e.rules {
		if rule.From == from && rule.RequiredRole == role {
			available = append(available, rule)
		}
	}
	return available
}

func (e TransitionEngine) find(from, to order.Status, role kernel.Role) (order.TransitionRule, bool) {
	for _, rule := range e.rules {
		if rule.From == from && rule.To == to && rule.RequiredRole == role {
			return rule, true
		}
	}
	return order.TransitionRule{}, false
}
