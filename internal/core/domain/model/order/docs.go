// Package order holds the procurement order aggregate.
//
// The package includes:
//   - Order: the aggregate root, with status, content, lock and audit trail
//   - Status and TransitionRule: the lifecycle stages and the role gated policy table
//   - Content: the editable substance of an order (contacts, prices, line items)
//   - FieldChange and FieldID: typed diff entries and the protected field policy
//   - FieldChangeRequest: a frozen protected edit awaiting a privileged approver
//   - AuditTrail: the append-only timeline and audit log
//
// Key business rules:
//   - an order is locked exactly while its field change request is Pending
//   - a locked order rejects every status change and content edit
//   - approving materializes the retained proposal, rejecting restores the
//     retained baseline; a terminal request can never be resolved again
package order
