package queries

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrGetPendingFieldChangesQueryIsNotConstructed = errors.New(
	"GetPendingFieldChangesQuery must be created via NewGetPendingFieldChangesQuery constructor",
)

// GetPendingFieldChangesQuery lists field change requests that still wait for
// an approver, oldest first. It backs the approver inbox and the reminder job.
//
// Example:
//
//	// everything pending
//	query := NewGetPendingFieldChangesQuery(time.Time{})
//
//	// pending for more than a day
//	query = NewGetPendingFieldChangesQuery(time.Now().Add(-24 * time.Hour))
type GetPendingFieldChangesQuery struct {
	requestedBefore time.Time

	guard guard.ConstructorGuard
}

// NewGetPendingFieldChangesQuery creates the query. A zero requestedBefore
// disables the age filter.
func NewGetPendingFieldChangesQuery(requestedBefore time.Time) GetPendingFieldChangesQuery {
	return GetPendingFieldChangesQuery{requestedBefore: requestedBefore, guard: guard.NewConstructorGuard()}
}

func (q GetPendingFieldChangesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingFieldChangesQueryIsNotConstructed)
}

func (q GetPendingFieldChangesQuery) RequestedBefore() time.Time {
	return q.requestedBefore
}

// PendingFieldChange is one row of the approver inbox.
type PendingFieldChange struct {
	RequestID       kernel.UUID
	OrderID         kernel.UUID
	PONumber        string
	CustomerName    string
	RequestedByID   string
	RequestedByName string
	RequestedAt     time.Time
	FieldCount      int
}
