// Package notifications decides who hears about a workflow step and what they
// are told. Delivery itself belongs to a ports.NotificationDispatcher.
package notifications

import (
	"fmt"
	"time"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// Composer renders notifications from committed order snapshots. It is pure:
// the same snapshot always yields the same notifications.
type Composer struct{}

func NewComposer() Composer {
	return Composer{}
}

// StatusChanged covers the stages that hand work to someone else. Sending a PO
// or a COA for approval notifies the named approver; a PO decision notifies
// the order creator with the note as the reason. Other stages notify nobody.
func (c Composer) StatusChanged(o *order.Order, opts order.StatusChangeOptions, at time.Time) []ports.Notification {
	status := o.Status()
	content := o.Content()

	switch status {
	case order.SentPOForApproval, order.AwaitingApproval:
		if opts.ApproverIdentity == "" {
			return nil
		}
		return []ports.Notification{{
			Kind:       ports.NotificationApprovalRequested,
			OrderID:    o.ID().String(),
			PONumber:   content.PONumber,
			Recipient:  opts.ApproverIdentity,
			Subject:    fmt.Sprintf("Approval requested for PO %s", poLabel(content)),
			Summary:    fmt.Sprintf("Order for %s moved to %s.", content.Customer.Name, status.Label()),
			OccurredAt: at,
		}}

	case order.POApproved, order.PORejected:
		summary := fmt.Sprintf("PO %s for %s was marked %s.", poLabel(content), content.Customer.Name, status.Label())
		if opts.Note != "" {
			summary += " Note: " + opts.Note
		}
		return []ports.Notification{{
			Kind:       ports.NotificationPODecided,
			OrderID:    o.ID().String(),
			PONumber:   content.PONumber,
			Recipient:  o.CreatedBy().UserID(),
			Subject:    fmt.Sprintf("PO %s: %s", poLabel(content), status.Label()),
			Summary:    summary,
			OccurredAt: at,
		}}

	default:
		return nil
	}
}

// FieldChangesPending asks the approver group to review a freshly locked
// order. It returns nil unless a pending request is attached.
func (c Composer) FieldChangesPending(o *order.Order) []ports.Notification {
	request := o.FieldChangeRequest()
	if request == nil || !request.IsPending() {
		return nil
	}
	content := o.Content()

	return []ports.Notification{{
		Kind:      ports.NotificationFieldChangesPending,
		OrderID:   o.ID().String(),
		PONumber:  content.PONumber,
		Recipient: ports.ApproverGroupRecipient,
		Subject: fmt.Sprintf("%s requests %d field change(s) on PO %s",
			request.RequestedBy().Name(), len(request.Fields()), poLabel(content)),
		Summary:    request.Summary(),
		OccurredAt: request.RequestedAt(),
	}}
}

// FieldChangesResolved tells the requester how their request ended.
func (c Composer) FieldChangesResolved(o *order.Order) []ports.Notification {
	request := o.FieldChangeRequest()
	if request == nil || request.IsPending() {
		return nil
	}
	resolver := request.ResolvedBy()
	content := o.Content()

	return []ports.Notification{{
		Kind:      ports.NotificationFieldChangesResolved,
		OrderID:   o.ID().String(),
		PONumber:  content.PONumber,
		Recipient: request.RequestedBy().UserID(),
		Subject: fmt.Sprintf("Field changes on PO %s %s by %s",
			poLabel(content), lower(request.Status()), resolver.Name()),
		Summary:    request.Summary(),
		OccurredAt: *request.ResolvedAt(),
	}}
}

// Reminder nudges the approver group about a request that is still pending.
func (c Composer) Reminder(p queries.PendingFieldChange, now time.Time) ports.Notification {
	po := p.PONumber
	if po == "" {
		po = p.OrderID.String()
	}

	return ports.Notification{
		Kind:      ports.NotificationFieldChangesReminder,
		OrderID:   p.OrderID.String(),
		PONumber:  p.PONumber,
		Recipient: ports.ApproverGroupRecipient,
		Subject:   fmt.Sprintf("Reminder: field changes on PO %s await approval", po),
		Summary: fmt.Sprintf("%s requested %d field change(s) for %s %s ago.",
			p.RequestedByName, p.FieldCount, p.CustomerName, now.Sub(p.RequestedAt).Truncate(time.Minute)),
		OccurredAt: now,
	}
}

func poLabel(content order.Content) string {
	if content.PONumber == "" {
		return "(no number)"
	}
	return content.PONumber
}

func lower(s order.FieldChangeStatus) string {
	switch s {
	case order.FieldChangeApproved:
		return "approved"
	case order.FieldChangeRejected:
		return "rejected"
	default:
		return "closed"
	}
}
