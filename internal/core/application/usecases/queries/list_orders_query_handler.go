package queries

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries from the orders table without
// loading the aggregates.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderSummaryRow struct {
	ID            uuid.UUID
	PONumber      string `gorm:"column:po_number"`
	Entity        string
	CustomerName  string
	Status        int
	IsLocked      bool
	CreatedByID   string
	CreatedByName string
	CreatedAt     time.Time
}

// Handle returns an empty, non-nil slice when no order matches. Orders created
// at the same instant are ordered by id.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	tx := h.db.WithContext(ctx).
		Table("orders").
		Select(`id, po_number, entity, customer_name, status, is_locked,
			created_by_id, created_by_name, created_at`)
	if filter.Status != nil {
		tx = tx.Where("status = ?", int(*filter.Status))
	}
	if filter.Entity != "" {
		tx = tx.Where("entity = ?", filter.Entity)
	}
	if filter.CreatedByID != "" {
		tx = tx.Where("created_by_id = ?", filter.CreatedByID)
	}

	var rows []orderSummaryRow
	if err := tx.Order("created_at DESC, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, OrderSummary{
			ID:            id,
			PONumber:      row.PONumber,
			Entity:        row.Entity,
			CustomerName:  row.CustomerName,
			Status:        order.Status(row.Status),
			IsLocked:      row.IsLocked,
			CreatedByID:   row.CreatedByID,
			CreatedByName: row.CreatedByName,
			CreatedAt:     row.CreatedAt,
		})
	}

	return summaries, nil
}
