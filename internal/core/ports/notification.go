package ports

import (
	"context"
	"time"
)

// NotificationKind tells the consumer which template to render.
type NotificationKind string

const (
	NotificationApprovalRequested    NotificationKind = "status.approval_requested"
	NotificationPODecided            NotificationKind = "status.po_decided"
	NotificationFieldChangesPending  NotificationKind = "field_changes.pending"
	NotificationFieldChangesResolved NotificationKind = "field_changes.resolved"
	NotificationFieldChangesReminder NotificationKind = "field_changes.reminder"
)

// ApproverGroupRecipient addresses every privileged approver instead of one person.
const ApproverGroupRecipient = "group:field-change-approvers"

// Notification is a message for a person. The engine decides who and what;
// delivery belongs to the dispatcher.
type Notification struct {
	Kind       NotificationKind
	OrderID    string
	PONumber   string
	Recipient  string
	Subject    string
	Summary    string
	OccurredAt time.Time
}

// NotificationDispatcher hands notifications to a delivery channel. It is
// called after a successful commit, so failures must not undo the write.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}
