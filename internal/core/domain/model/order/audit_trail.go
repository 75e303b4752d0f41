package order

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
)

// Timeline event names.
const (
	EventOrderCreated         = "Order Created"
	EventStatusUpdated        = "Status Updated"
	EventFieldChangesPending  = "Field Changes Pending Approval"
	EventFieldChangesApproved = "Field Changes Approved"
	EventFieldChangesRejected = "Field Changes Rejected"
)

// AuditFieldStatus is the audit entry field name used for status changes.
const AuditFieldStatus = "status"

// TimelineEvent is a lifecycle entry. Status is the order status after the event.
type TimelineEvent struct {
	ID      kernel.UUID
	Event   string
	Details string
	Status  Status
	Actor   kernel.Actor
	At      time.Time
}

// AuditEntry records a single field level change.
type AuditEntry struct {
	ID       kernel.UUID
	Field    string
	OldValue string
	NewValue string
	Actor    kernel.Actor
	At       time.Time
	Note     string
}

// AuditTrail is the append-only history of an order. Entries are never edited
// or removed; repositories persist only entries they have not stored yet.
type AuditTrail struct {
	timeline  []TimelineEvent
	auditLogs []AuditEntry
}

// NewAuditTrail restores a trail from stored entries, oldest first.
func NewAuditTrail(timeline []TimelineEvent, auditLogs []AuditEntry) AuditTrail {
	return AuditTrail{
		timeline:  append([]TimelineEvent(nil), timeline...),
		auditLogs: append([]AuditEntry(nil), auditLogs...),
	}
}

func (t AuditTrail) Timeline() []TimelineEvent {
	return append([]TimelineEvent(nil), t.timeline...)
}

func (t AuditTrail) AuditLogs() []AuditEntry {
	return append([]AuditEntry(nil), t.auditLogs...)
}

func (t AuditTrail) clone() AuditTrail {
	return NewAuditTrail(t.timeline, t.auditLogs)
}

func (t *AuditTrail) recordEvent(event, details string, status Status, actor kernel.Actor, at time.Time) {
	t.timeline = append(t.timeline, TimelineEvent{
		ID:      kernel.NewUUID(),
		Event:   event,
		Details: details,
		Status:  status,
		Actor:   actor,
		At:      at,
	})
}

func (t *AuditTrail) recordChange(field, oldValue, newValue string, actor kernel.Actor, at time.Time, note string) {
	t.auditLogs = append(t.auditLogs, AuditEntry{
		ID:       kernel.NewUUID(),
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
		Actor:    actor,
		At:       at,
		Note:     note,
	})
}

func (t *AuditTrail) recordFieldChanges(changes []FieldChange, actor kernel.Actor, at time.Time, note string) {
	for _, change := range changes {
		t.recordChange(change.Label, change.OldValue, change.NewValue, actor, at, note)
	}
}
