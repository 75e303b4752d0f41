package queries

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersFilter narrows the order list. Zero fields do not filter.
type ListOrdersFilter struct {
	Status      *order.Status
	Entity      string
	CreatedByID string
}

// ListOrdersQuery lists order summaries, newest first. Filtering by
// CreatedByID gives the "my orders" view of one user.
//
// Example:
//
//	approved := order.POApproved
//	query, err := NewListOrdersQuery(ListOrdersFilter{Status: &approved, Entity: "HRV"})
//	if err != nil {
//	    return err
//	}
//	summaries, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter ListOrdersFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter ListOrdersFilter) (ListOrdersQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		status := *filter.Status
		filter.Status = &status
	}
	filter.Entity = strings.TrimSpace(filter.Entity)
	filter.CreatedByID = strings.TrimSpace(filter.CreatedByID)

	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID            kernel.UUID
	PONumber      string
	Entity        string
	CustomerName  string
	Status        order.Status
	IsLocked      bool
	CreatedByID   string
	CreatedByName string
	CreatedAt     time.Time
}
