package errs

import (
	"errors"
	"fmt"
)

// Workflow sentinels. Every detailed error below unwraps to exactly one of them,
// so callers classify with errors.Is and read details with errors.As.
var (
	ErrInvalidTransition      = errors.New("status transition is not allowed")
	ErrValidation             = errors.New("validation failed")
	ErrOrderIsLocked          = errors.New("order is locked pending field change approval")
	ErrAlreadyLocked          = errors.New("order already has a pending field change request")
	ErrNotPending             = errors.New("field change request is not pending")
	ErrUnauthorizedApprover   = errors.New("actor is not allowed to resolve field changes")
	ErrConcurrentModification = errors.New("order was modified concurrently")
)

type InvalidTransitionError struct {
	From string
	To   string
	Role string
}

func NewInvalidTransitionError(from, to, role string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s for role %s", ErrInvalidTransition, e.From, e.To, e.Role)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidationError is a precondition failure on order content, e.g. a
// transition that needs a field the order does not have yet.
type ValidationError struct {
	ParamName string
	Reason    string
}

func NewValidationError(paramName, reason string) *ValidationError {
	return &ValidationError{ParamName: paramName, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.ParamName, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type LockedOrderError struct {
	OrderID   string
	RequestID string
}

func NewLockedOrderError(orderID, requestID string) *LockedOrderError {
	return &LockedOrderError{OrderID: orderID, RequestID: requestID}
}

func (e *LockedOrderError) Error() string {
	return fmt.Sprintf("%s: order %s waits on request %s", ErrOrderIsLocked, e.OrderID, e.RequestID)
}

func (e *LockedOrderError) Unwrap() error {
	return ErrOrderIsLocked
}

type AlreadyLockedError struct {
	OrderID   string
	RequestID string
}

func NewAlreadyLockedError(orderID, requestID string) *AlreadyLockedError {
	return &AlreadyLockedError{OrderID: orderID, RequestID: requestID}
}

func (e *AlreadyLockedError) Error() string {
	return fmt.Sprintf("%s: order %s, request %s", ErrAlreadyLocked, e.OrderID, e.RequestID)
}

func (e *AlreadyLockedError) Unwrap() error {
	return ErrAlreadyLocked
}

// NotPendingError is returned when resolving an order whose request is
// missing or already terminal. Status is empty when there is no request.
type NotPendingError struct {
	OrderID   string
	RequestID string
	Status    string
}

func NewNotPendingError(orderID, requestID, status string) *NotPendingError {
	return &NotPendingError{OrderID: orderID, RequestID: requestID, Status: status}
}

func (e *NotPendingError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("%s: order %s has no field change request", ErrNotPending, e.OrderID)
	}
	return fmt.Sprintf("%s: request %s is %s", ErrNotPending, e.RequestID, e.Status)
}

func (e *NotPendingError) Unwrap() error {
	return ErrNotPending
}

type UnauthorizedApproverError struct {
	UserID string
	Role   string
}

func NewUnauthorizedApproverError(userID, role string) *UnauthorizedApproverError {
	return &UnauthorizedApproverError{UserID: userID, Role: role}
}

func (e *UnauthorizedApproverError) Error() string {
	return fmt.Sprintf("%s: user %s has role %s", ErrUnauthorizedApprover, e.UserID, e.Role)
}

func (e *UnauthorizedApproverError) Unwrap() error {
	return ErrUnauthorizedApprover
}

// ConcurrentModificationError is the only workflow error worth retrying:
// reload the order and run the operation again.
type ConcurrentModificationError struct {
	OrderID         string
	ExpectedVersion int64
}

func NewConcurrentModificationError(orderID string, expectedVersion int64) *ConcurrentModificationError {
	return &ConcurrentModificationError{OrderID: orderID, ExpectedVersion: expectedVersion}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: order %s is no longer at version %d", ErrConcurrentModification, e.OrderID, e.ExpectedVersion)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
