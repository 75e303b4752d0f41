// Package errs provides standardized error types for the procurement service.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired, ErrOrderIsLocked)
//   - a struct type carrying the details
//   - constructor functions, with and without cause where a cause makes sense
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Two groups live here. The value errors (ValueIsRequired, ValueIsInvalid,
// ValueIsOutOfRange, ObjectNotFound, VersionIsInvalid) are raised by constructors
// and repositories. The workflow errors (InvalidTransition, Validation, LockedOrder,
// AlreadyLocked, NotPending, UnauthorizedApprover, ConcurrentModification) are raised
// by the order lifecycle engine and mapped to HTTP statuses by the API adapter.
package errs
