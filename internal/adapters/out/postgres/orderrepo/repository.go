package orderrepo

import (
	"context"
	"database/sql"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// serializationFailure is the SQLSTATE a repeatable-read transaction gets when
// it updates a row another transaction changed after its snapshot was taken.
const serializationFailure = "40001"

// snapshotRead is used for loads outside a unit of work. Inside one, the load
// runs in a savepoint of the caller's transaction instead.
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// GormOrderRepository implements ports.OrderRepository using GORM. It expects
// to run inside the transaction of a unit of work: a write touches several
// tables and is only atomic when the caller commits them together.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// AutoMigrate creates or updates every table the repository uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&OrderDTO{},
		&MaterialDTO{},
		&TimelineEventDTO{},
		&AuditLogDTO{},
		&FieldChangeRequestDTO{},
	)
}

// Tables lists the repository tables, children first.
func Tables() []string {
	return []string{
		"field_change_requests",
		"order_audit_logs",
		"order_timeline_events",
		"order_materials",
		"orders",
	}
}

// Add saves a new order at ports.InitialVersion.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := fromDomain(aggregate, ports.InitialVersion)
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(&rec.order).Error; err != nil {
		return err
	}

	return r.saveChildren(db, rec)
}

// Get loads the order with its materials, trail and latest field change request.
// All rows come from one snapshot. A lock flag that disagrees with the loaded
// request can then only come from a concurrent writer, and is reported as a
// ConcurrentModificationError so that the caller reloads.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, ports.Version, error) {
	if err := id.Validate(); err != nil {
		return nil, 0, err
	}

	var rec record
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return load(tx, id, &rec)
	}, snapshotRead)
	if err != nil {
		return nil, 0, err
	}

	o, err := toDomain(rec)
	if isLockMismatch(err) {
		return nil, 0, errs.NewConcurrentModificationError(id.String(), rec.order.Version)
	}
	if err != nil {
		return nil, 0, err
	}
	return o, ports.Version(rec.order.Version), nil
}

func load(db *gorm.DB, id kernel.UUID, rec *record) error {
	err := db.Preload("Materials", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).First(&rec.order, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return err
	}

	if err = db.Where("order_id = ?", rec.order.ID).Order("seq").Find(&rec.timeline).Error; err != nil {
		return err
	}
	if err = db.Where("order_id = ?", rec.order.ID).Order("seq").Find(&rec.auditLogs).Error; err != nil {
		return err
	}

	if rec.order.CurrentRequestID != nil {
		var request FieldChangeRequestDTO
		if err = db.First(&request, "id = ?", *rec.order.CurrentRequestID).Error; err != nil {
			return err
		}
		rec.request = &request
	}
	return nil
}

// CompareAndSwap updates the orders row only while its version equals
// expected. A miss on an existing id is a ConcurrentModificationError, and so
// is a serialization failure of the surrounding repeatable-read transaction.
func (r *GormOrderRepository) CompareAndSwap(
	ctx context.Context,
	expected ports.Version,
	aggregate *order.Order,
) (ports.Version, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}
	if expected < ports.InitialVersion {
		return 0, errs.NewVersionIsInvalidError("expected")
	}

	next := expected + 1
	rec := fromDomain(aggregate, next)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", rec.order.ID, int64(expected)).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&rec.order)
	if result.Error != nil {
		return 0, conflictOr(result.Error, aggregate.ID(), expected)
	}

	if result.RowsAffected == 0 {
		return 0, r.missReason(db, aggregate.ID(), expected)
	}

	if err := db.Where("order_id = ?", rec.order.ID).Delete(&MaterialDTO{}).Error; err != nil {
		return 0, conflictOr(err, aggregate.ID(), expected)
	}
	if err := r.saveChildren(db, rec); err != nil {
		return 0, conflictOr(err, aggregate.ID(), expected)
	}

	return next, nil
}

// saveChildren writes materials, new trail entries and the current request.
// Trail entries that already exist are left untouched.
func (r *GormOrderRepository) saveChildren(db *gorm.DB, rec record) error {
	if len(rec.order.Materials) > 0 {
		if err := db.Create(&rec.order.Materials).Error; err != nil {
			return err
		}
	}

	if len(rec.timeline) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec.timeline).Error; err != nil {
			return err
		}
	}
	if len(rec.auditLogs) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec.auditLogs).Error; err != nil {
			return err
		}
	}

	if rec.request != nil {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec.request).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *GormOrderRepository) missReason(db *gorm.DB, id kernel.UUID, expected ports.Version) error {
	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConcurrentModificationError(id.String(), int64(expected))
}

func isLockMismatch(err error) bool {
	var invalid *errs.ValueIsInvalidError
	return errors.As(err, &invalid) && errors.Is(invalid.Cause, order.ErrLockInvariantViolated)
}

func conflictOr(err error, id kernel.UUID, expected ports.Version) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == serializationFailure {
		return errs.NewConcurrentModificationError(id.String(), int64(expected))
	}
	return err
}
