package services

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// ApplyResult is the outcome of a submitted edit.
type ApplyResult struct {
	// Locked is true when the edit was frozen into a pending request.
	Locked bool
	// Committed is the snapshot to store. When Locked its content is still the baseline.
	Committed *order.Order
	// Changes is the full diff between baseline and proposal.
	Changes []order.FieldChange
	// Request is the new pending request, nil unless Locked.
	Request *order.FieldChangeRequest
}

// HasChanges reports whether the edit touched anything at all.
func (r ApplyResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// ApprovalLockManager decides whether an edit commits directly or waits for a
// privileged approver, and resolves waiting edits. At most one request per
// order is pending at any time.
type ApprovalLockManager struct {
	diff DiffEngine
}

func NewApprovalLockManager(diff DiffEngine) ApprovalLockManager {
	return ApprovalLockManager{diff: diff}
}

// Submit applies proposed on top of baseline.
//
// Once the baseline status has reached the approval threshold, any change to a
// protected field freezes the whole edit: a pending request retains both
// snapshots, the committed order keeps the baseline content and becomes locked.
// Otherwise the proposal is committed with one audit entry per change.
//
// Neither input is mutated.
func (m ApprovalLockManager) Submit(
	baseline, proposed *order.Order,
	actor kernel.Actor,
	at time.Time,
) (ApplyResult, error) {
	if err := baseline.Validate(); err != nil {
		return ApplyResult{}, err
	}
	if baseline.IsLocked() {
		return ApplyResult{}, errs.NewAlreadyLockedError(baseline.ID().String(),
			baseline.FieldChangeRequest().ID().String())
	}
	if err := proposed.Validate(); err != nil {
		return ApplyResult{}, err
	}
	if err := actor.Validate(); err != nil {
		return ApplyResult{}, err
	}

	proposedContent := proposed.Content()
	if err := proposedContent.Validate(); err != nil {
		return ApplyResult{}, err
	}

	baselineContent := baseline.Content()
	changes := m.diff.DiffContent(baselineContent, proposedContent)
	committed := baseline.Clone()

	protected := order.ProtectedChanges(changes)
	if baseline.Status().RequiresFieldChangeApproval() && len(protected) > 0 {
		request, err := order.NewFieldChangeRequest(kernel.NewUUID(), actor, at, protected,
			baselineContent, proposedContent)
		if err != nil {
			return ApplyResult{}, err
		}
		if err = committed.LockForFieldChanges(request); err != nil {
			return ApplyResult{}, err
		}
		return ApplyResult{Locked: true, Committed: committed, Changes: changes, Request: request}, nil
	}

	if err := committed.CommitContent(proposedContent, changes, actor, at); err != nil {
		return ApplyResult{}, err
	}
	return ApplyResult{Committed: committed, Changes: changes}, nil
}

// Resolve approves or rejects the pending request of o and returns the new
// snapshot. A missing or terminal request fails with NotPendingError before the
// approver's role is looked at.
//
// Approve materializes the retained proposal and audits every difference
// between the retained snapshots. Reject restores the retained baseline.
func (m ApprovalLockManager) Resolve(
	o *order.Order,
	decision order.Decision,
	approver kernel.Actor,
	at time.Time,
) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	resolved := o.Clone()
	switch decision {
	case order.DecisionApprove:
		var changes []order.FieldChange
		if request := o.FieldChangeRequest(); request != nil {
			changes = m.diff.DiffContent(request.Baseline(), request.Proposed())
		}
		if err := resolved.ApproveFieldChanges(approver, changes, at); err != nil {
			return nil, err
		}
	case order.DecisionReject:
		if err := resolved.RejectFieldChanges(approver, at); err != nil {
			return nil, err
		}
	default:
		return nil, errs.NewValueIsInvalidError("decision")
	}
	return resolved, nil
}
