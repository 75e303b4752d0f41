// Package ports defines the contracts between the order lifecycle engine and
// its infrastructure: durable storage, the transaction boundary and
// outbound notifications.
package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// Version is the optimistic concurrency token of a stored order. It grows by
// one on every successful write.
type Version int64

// InitialVersion is the version of a freshly added order.
const InitialVersion Version = 1

// OrderRepository is durable keyed storage for order aggregates.
type OrderRepository interface {
	// Add stores a new order at InitialVersion.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its field change request and full trail,
	// plus the version to pass to CompareAndSwap.
	// Unknown ids fail with errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, Version, error)

	// CompareAndSwap writes aggregate only if the stored version still equals
	// expected, and returns the new version.
	//
	// Only trail entries that are not stored yet are inserted; existing
	// entries are never rewritten.
	//
	// Example:
	//   o, v, err := repo.Get(ctx, id)
	//   // ... mutate a clone of o
	//   next, err := repo.CompareAndSwap(ctx, v, updated)
	//   if errors.Is(err, errs.ErrConcurrentModification) {
	//       // someone else wrote first: reload and retry
	//   }
	CompareAndSwap(ctx context.Context, expected Version, aggregate *order.Order) (Version, error)
}
