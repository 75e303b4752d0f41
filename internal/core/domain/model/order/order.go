package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLockInvariantViolated means stored data claims a lock state that does
	// not match the attached field change request.
	ErrLockInvariantViolated = errors.New("lock flag must equal the presence of a pending field change request")
)

// StatusChangeOptions carries the caller supplied extras of a status change.
type StatusChangeOptions struct {
	// ApproverIdentity names the person who receives the approval task when the
	// order is sent for approval.
	ApproverIdentity string
	// Note is free text stored on the audit entry, e.g. a PO rejection reason.
	Note string
}

// Order is the aggregate root of a procurement order.
//
// Order follows these invariants:
//   - identity, creator and creation time never change
//   - the order is locked exactly when its field change request is Pending;
//     the lock is derived from the request, never stored separately
//   - the audit trail only grows
//   - while locked, neither status nor content can change; only resolving the
//     request unlocks it
//
// Mutating methods are meant to be called on a Clone of the loaded baseline so
// that baseline and committed snapshots stay distinct values.
type Order struct {
	id        kernel.UUID
	status    Status
	content   Content
	createdBy kernel.Actor
	createdAt time.Time

	// fieldChanges is the latest field change request, pending or terminal.
	// Older terminal requests stay in storage but are no longer attached.
	fieldChanges *FieldChangeRequest

	trail AuditTrail

	isConstructed bool
}

// NewOrder creates an order in the initial stage with an "Order Created" timeline event.
//
// Example:
//
//	creator, _ := kernel.NewActor("u-1", "Asha Rao", kernel.RoleEmployee)
//	o, err := order.NewOrder(kernel.NewUUID(), content, creator, time.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(id kernel.UUID, content Content, createdBy kernel.Actor, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        POReceivedFromClient,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setContent(content),
		o.setCreator(createdBy, createdAt),
	); err != nil {
		return nil, err
	}

	o.trail.recordEvent(EventOrderCreated,
		fmt.Sprintf("Order received from %s", o.content.Customer.Name),
		o.status, createdBy, createdAt)
	return o, nil
}

// RestoreOrder rebuilds an order from storage. isLocked is the stored flag; it
// is checked against the request rather than trusted.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	content Content,
	createdBy kernel.Actor,
	createdAt time.Time,
	isLocked bool,
	fieldChanges *FieldChangeRequest,
	trail AuditTrail,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setContent(content),
		o.setCreator(createdBy, createdAt),
		o.setFieldChanges(fieldChanges),
	); err != nil {
		return nil, err
	}

	if o.IsLocked() != isLocked {
		return nil, errs.NewValueIsInvalidErrorWithCause("isLocked", ErrLockInvariantViolated)
	}

	o.trail = trail.clone()
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

// Content returns a copy of the editable content.
func (o *Order) Content() Content {
	return o.content.Clone()
}

func (o *Order) CreatedBy() kernel.Actor {
	return o.createdBy
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsLocked is true exactly when a Pending field change request is attached.
func (o *Order) IsLocked() bool {
	return o.fieldChanges != nil && o.fieldChanges.IsPending()
}

// FieldChangeRequest returns a copy of the latest request, or nil if the order
// never had one.
func (o *Order) FieldChangeRequest() *FieldChangeRequest {
	return o.fieldChanges.Clone()
}

func (o *Order) Trail() AuditTrail {
	return o.trail.clone()
}

func (o *Order) Timeline() []TimelineEvent {
	return o.trail.Timeline()
}

func (o *Order) AuditLogs() []AuditEntry {
	return o.trail.AuditLogs()
}

// Clone returns an independent copy sharing no mutable state.
func (o *Order) Clone() *Order {
	clone := *o
	clone.content = o.content.Clone()
	clone.fieldChanges = o.fieldChanges.Clone()
	clone.trail = o.trail.clone()
	return &clone
}

// WithContent builds a proposed snapshot: a clone whose content is replaced.
// The content is validated so that a broken proposal never reaches the diff.
func (o *Order) WithContent(content Content) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}

	proposed := o.Clone()
	proposed.content = content.Clone()
	return proposed, nil
}

// MoveTo records a status change that has already been checked against the
// transition table. It adds an audit entry for the status field and a
// "Status Updated" timeline event.
func (o *Order) MoveTo(target Status, actor kernel.Actor, opts StatusChangeOptions, at time.Time) error {
	if err := o.ensureUnlocked(); err != nil {
		return err
	}
	if err := errors.Join(target.Validate(), actor.Validate()); err != nil {
		return err
	}

	from := o.status
	o.status = target

	note := opts.Note
	if note == "" {
		note = "Status changed to " + target.Label()
	}
	o.trail.recordChange(AuditFieldStatus, from.String(), target.String(), actor, at, note)

	details := []string{fmt.Sprintf("Status changed from %s to %s", from.Label(), target.Label())}
	if opts.ApproverIdentity != "" {
		details = append(details, "approval requested from "+opts.ApproverIdentity)
	}
	if opts.Note != "" {
		details = append(details, "note: "+opts.Note)
	}
	o.trail.recordEvent(EventStatusUpdated, strings.Join(details, "; "), target, actor, at)
	return nil
}

// CommitContent replaces the content directly, with one audit entry per change.
func (o *Order) CommitContent(content Content, changes []FieldChange, actor kernel.Actor, at time.Time) error {
	if err := o.ensureUnlocked(); err != nil {
		return err
	}
	if err := errors.Join(content.Validate(), actor.Validate()); err != nil {
		return err
	}

	o.content = content.Clone()
	o.trail.recordFieldChanges(changes, actor, at, "")
	return nil
}

// LockForFieldChanges attaches a pending request. The content stays at the
// baseline until the request is resolved.
func (o *Order) LockForFieldChanges(request *FieldChangeRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}
	if o.IsLocked() {
		return errs.NewAlreadyLockedError(o.id.String(), o.fieldChanges.ID().String())
	}
	if !request.IsPending() {
		return errs.NewValueIsInvalidErrorWithCause("fieldChangeRequest",
			fmt.Errorf("request %s is already %s", request.ID(), request.Status()))
	}

	o.fieldChanges = request.Clone()

	labels := make([]string, 0, len(request.fields))
	for _, f := range request.fields {
		labels = append(labels, f.Label)
	}
	o.trail.recordEvent(EventFieldChangesPending,
		fmt.Sprintf("%d protected field change(s) awaiting approval: %s", len(labels), strings.Join(labels, ", ")),
		o.status, request.RequestedBy(), request.RequestedAt())
	return nil
}

// ApproveFieldChanges materializes the retained proposal. changes are the
// entries to audit, each noted "Approved by <approver>".
func (o *Order) ApproveFieldChanges(approver kernel.Actor, changes []FieldChange, at time.Time) error {
	request, err := o.resolvableRequest(approver)
	if err != nil {
		return err
	}
	if err = request.resolve(FieldChangeApproved, approver, at, o.id); err != nil {
		return err
	}

	o.content = request.Proposed()
	o.trail.recordFieldChanges(changes, approver, at, "Approved by "+approver.Name())
	o.trail.recordEvent(EventFieldChangesApproved, "Field changes approved by "+approver.Name(), o.status, approver, at)
	return nil
}

// RejectFieldChanges restores the retained baseline. The terminal request stays attached.
func (o *Order) RejectFieldChanges(approver kernel.Actor, at time.Time) error {
	request, err := o.resolvableRequest(approver)
	if err != nil {
		return err
	}
	if err = request.resolve(FieldChangeRejected, approver, at, o.id); err != nil {
		return err
	}

	o.content = request.Baseline()
	o.trail.recordEvent(EventFieldChangesRejected, "Field changes rejected by "+approver.Name(), o.status, approver, at)
	return nil
}

// resolvableRequest checks pending state before authority, so a repeated
// resolve reports NotPending whoever sends it.
func (o *Order) resolvableRequest(approver kernel.Actor) (*FieldChangeRequest, error) {
	if o.fieldChanges == nil {
		return nil, errs.NewNotPendingError(o.id.String(), "", "")
	}
	if !o.fieldChanges.IsPending() {
		return nil, errs.NewNotPendingError(o.id.String(), o.fieldChanges.ID().String(), o.fieldChanges.Status().String())
	}
	if err := approver.Validate(); err != nil {
		return nil, err
	}
	if !approver.Role().CanResolveFieldChanges() {
		return nil, errs.NewUnauthorizedApproverError(approver.UserID(), approver.Role().String())
	}
	return o.fieldChanges, nil
}

func (o *Order) ensureUnlocked() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.IsLocked() {
		return errs.NewLockedOrderError(o.id.String(), o.fieldChanges.ID().String())
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setContent(content Content) error {
	if err := content.Validate(); err != nil {
		return err
	}
	o.content = content.Clone()
	return nil
}

func (o *Order) setCreator(actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdBy = actor
	o.createdAt = at
	return nil
}

func (o *Order) setFieldChanges(request *FieldChangeRequest) error {
	if request == nil {
		return nil
	}
	if err := request.Validate(); err != nil {
		return err
	}
	o.fieldChanges = request.Clone()
	return nil
}
