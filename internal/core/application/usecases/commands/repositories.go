// Package commands contains the write operations of the order lifecycle engine.
// Every command is one atomic read-modify-write: validate the command, open a
// unit of work, load the baseline with its version, build the new snapshot on
// a clone and store it with a compare-and-swap.
package commands

import (
	"context"
	"time"

	"procurement/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages the transaction of a single order operation.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, version, err := uow.OrderRepository().Get(ctx, id)
	//   // ... mutate a clone of o
	//   _, err = uow.OrderRepository().CompareAndSwap(ctx, version, updated)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Clock returns the time stamped on trail entries and requests.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
