// Package services provides the domain services of the order lifecycle engine.
// They hold the rules that span several snapshots of one order rather than a
// single aggregate state.
//
// The package includes:
//   - TransitionEngine: checks status changes against the role-gated transition table
//   - DiffEngine: lists the field level differences between two snapshots
//   - ApprovalLockManager: decides whether an edit commits directly or waits for approval,
//     and resolves pending field change requests
//
// All services are pure: they never persist, log or read the clock. Callers
// pass the current time in and store the returned snapshot.
package services
