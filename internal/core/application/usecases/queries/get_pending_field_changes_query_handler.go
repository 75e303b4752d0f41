package queries

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingFieldChangesQueryHandler reads pending requests straight from the
// database, joined with the order they lock.
type GetPendingFieldChangesQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingFieldChangesQueryHandler(db *gorm.DB) GetPendingFieldChangesQueryHandler {
	return GetPendingFieldChangesQueryHandler{db: db}
}

type pendingFieldChangeRow struct {
	RequestID       uuid.UUID
	OrderID         uuid.UUID
	PONumber        string `gorm:"column:po_number"`
	CustomerName    string
	RequestedByID   string
	RequestedByName string
	RequestedAt     time.Time
	FieldCount      int
}

// Handle returns an empty, non-nil slice when nothing is pending.
func (h GetPendingFieldChangesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingFieldChangesQuery,
) ([]PendingFieldChange, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("field_change_requests AS r").
		Select(`r.id AS request_id,
			r.order_id AS order_id,
			o.po_number AS po_number,
			o.customer_name AS customer_name,
			r.requested_by_id AS requested_by_id,
			r.requested_by_name AS requested_by_name,
			r.requested_at AS requested_at,
			jsonb_array_length(r.fields) AS field_count`).
		Joins("JOIN orders AS o ON o.id = r.order_id").
		Where("r.status = ?", int(order.FieldChangePending))
	if before := query.RequestedBefore(); !before.IsZero() {
		tx = tx.Where("r.requested_at < ?", before)
	}

	var rows []pendingFieldChangeRow
	if err := tx.Order("r.requested_at, r.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	pending := make([]PendingFieldChange, 0, len(rows))
	for _, row := range rows {
		requestID, err := kernel.UUIDFromBytes(row.RequestID[:])
		if err != nil {
			return nil, err
		}
		orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
		if err != nil {
			return nil, err
		}
		pending = append(pending, PendingFieldChange{
			RequestID:       requestID,
			OrderID:         orderID,
			PONumber:        row.PONumber,
			CustomerName:    row.CustomerName,
			RequestedByID:   row.RequestedByID,
			RequestedByName: row.RequestedByName,
			RequestedAt:     row.RequestedAt,
			FieldCount:      row.FieldCount,
		})
	}

	return pending, nil
}
