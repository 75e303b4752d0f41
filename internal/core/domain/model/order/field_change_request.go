package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var ErrFieldChangeRequestIsNotConstructed = errors.New(
	"FieldChangeRequest must be created via NewFieldChangeRequest constructor",
)

// FieldChangeStatus is monotonic: Pending moves to Approved or Rejected once
// and never changes again.
type FieldChangeStatus int

const (
	FieldChangeUnknown FieldChangeStatus = iota
	FieldChangePending
	FieldChangeApproved
	FieldChangeRejected
)

func getFieldChangeStatusStrings() map[FieldChangeStatus]string {
	return map[FieldChangeStatus]string{
		FieldChangeUnknown:  "Unknown",
		FieldChangePending:  "Pending",
		FieldChangeApproved: "Approved",
		FieldChangeRejected: "Rejected",
	}
}

func (s FieldChangeStatus) String() string {
	if str, ok := getFieldChangeStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s FieldChangeStatus) Validate() error {
	if s < FieldChangePending || s > FieldChangeRejected {
		return errs.NewValueIsInvalidErrorWithCause("field change status",
			fmt.Errorf("%d is not a valid field change status", s))
	}
	return nil
}

// Decision is the outcome an approver picks for a pending request.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionApprove
	DecisionReject
)

// ParseDecision accepts "approve" or "reject" in any case.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve":
		return DecisionApprove, nil
	case "reject":
		return DecisionReject, nil
	default:
		return DecisionUnknown, errs.NewValueIsInvalidErrorWithCause("decision",
			fmt.Errorf("%q is neither approve nor reject", s))
	}
}

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "approve"
	case DecisionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// FieldChangeRequest records a frozen protected edit. It keeps the literal
// baseline and proposed content so that approval materializes the proposal and
// rejection restores the baseline without replaying the diff.
type FieldChangeRequest struct {
	id          kernel.UUID
	requestedBy kernel.Actor
	requestedAt time.Time
	fields      []FieldChange
	status      FieldChangeStatus
	resolvedBy  *kernel.Actor
	resolvedAt  *time.Time
	baseline    Content
	proposed    Content

	isConstructed bool
}

// NewFieldChangeRequest opens a Pending request for the given protected changes.
func NewFieldChangeRequest(
	id kernel.UUID,
	requestedBy kernel.Actor,
	requestedAt time.Time,
	fields []FieldChange,
	baseline Content,
	proposed Content,
) (*FieldChangeRequest, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := requestedBy.Validate(); err != nil {
		errList = append(errList, err)
	}
	if requestedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("requestedAt"))
	}
	if len(fields) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("fields"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &FieldChangeRequest{
		id:            id,
		requestedBy:   requestedBy,
		requestedAt:   requestedAt,
		fields:        append([]FieldChange(nil), fields...),
		status:        FieldChangePending,
		baseline:      baseline.Clone(),
		proposed:      proposed.Clone(),
		isConstructed: true,
	}, nil
}

// RestoreFieldChangeRequest rebuilds a request from storage. A resolver is
// present exactly when the status is terminal.
func RestoreFieldChangeRequest(
	id kernel.UUID,
	requestedBy kernel.Actor,
	requestedAt time.Time,
	fields []FieldChange,
	status FieldChangeStatus,
	resolvedBy *kernel.Actor,
	resolvedAt *time.Time,
	baseline Content,
	proposed Content,
) (*FieldChangeRequest, error) {
	request, err := NewFieldChangeRequest(id, requestedBy, requestedAt, fields, baseline, proposed)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	terminal := status != FieldChangePending
	if terminal != (resolvedBy != nil && resolvedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("resolvedBy",
			fmt.Errorf("request %s is %s but resolver presence is %t", id, status, resolvedBy != nil))
	}

	request.status = status
	if terminal {
		actor := *resolvedBy
		at := *resolvedAt
		request.resolvedBy = &actor
		request.resolvedAt = &at
	}
	return request, nil
}

func (r *FieldChangeRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrFieldChangeRequestIsNotConstructed
	}
	return nil
}

func (r *FieldChangeRequest) ID() kernel.UUID {
	return r.id
}

func (r *FieldChangeRequest) RequestedBy() kernel.Actor {
	return r.requestedBy
}

func (r *FieldChangeRequest) RequestedAt() time.Time {
	return r.requestedAt
}

// Fields returns a copy of the protected changes awaiting approval.
func (r *FieldChangeRequest) Fields() []FieldChange {
	return append([]FieldChange(nil), r.fields...)
}

func (r *FieldChangeRequest) Status() FieldChangeStatus {
	return r.status
}

func (r *FieldChangeRequest) IsPending() bool {
	return r.status == FieldChangePending
}

// ResolvedBy returns the approver or rejecter, nil while pending.
func (r *FieldChangeRequest) ResolvedBy() *kernel.Actor {
	if r.resolvedBy == nil {
		return nil
	}
	actor := *r.resolvedBy
	return &actor
}

func (r *FieldChangeRequest) ResolvedAt() *time.Time {
	if r.resolvedAt == nil {
		return nil
	}
	at := *r.resolvedAt
	return &at
}

func (r *FieldChangeRequest) ApprovedBy() *kernel.Actor {
	if r.status != FieldChangeApproved {
		return nil
	}
	return r.ResolvedBy()
}

func (r *FieldChangeRequest) RejectedBy() *kernel.Actor {
	if r.status != FieldChangeRejected {
		return nil
	}
	return r.ResolvedBy()
}

// Baseline is the content as it was when the request was opened.
func (r *FieldChangeRequest) Baseline() Content {
	return r.baseline.Clone()
}

// Proposed is the full content submitted with the protected edit.
func (r *FieldChangeRequest) Proposed() Content {
	return r.proposed.Clone()
}

// Summary renders the field list for approval prompts and notifications.
func (r *FieldChangeRequest) Summary() string {
	var sb strings.Builder
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %s -> %s", f.Label, displayValue(f.OldValue), displayValue(f.NewValue))
	}
	return sb.String()
}

func (r *FieldChangeRequest) Clone() *FieldChangeRequest {
	if r == nil {
		return nil
	}
	clone := *r
	clone.fields = r.Fields()
	clone.resolvedBy = r.ResolvedBy()
	clone.resolvedAt = r.ResolvedAt()
	clone.baseline = r.baseline.Clone()
	clone.proposed = r.proposed.Clone()
	return &clone
}

func (r *FieldChangeRequest) resolve(status FieldChangeStatus, by kernel.Actor, at time.Time, orderID kernel.UUID) error {
	if !r.IsPending() {
		return errs.NewNotPendingError(orderID.String(), r.id.String(), r.status.String())
	}
	r.status = status
	r.resolvedBy = &by
	r.resolvedAt = &at
	return nil
}

func displayValue(v string) string {
	if v == "" {
		return "(empty)"
	}
	return v
}
