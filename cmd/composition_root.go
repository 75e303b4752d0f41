package cmd

import (
	"errors"
	"log/slog"
	"time"

	httpin "procurement/internal/adapters/in/http"
	kafkaout "procurement/internal/adapters/out/kafka"
	"procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/application/notifications"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/services"
	"procurement/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *kafkaout.NotificationPublisher
	registry   prometheus.Registerer
	logger     *slog.Logger
	clock      commands.Clock
	engine     services.TransitionEngine
	manager    services.ApprovalLockManager
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	writer kafkaout.MessageWriter,
	registry prometheus.Registerer,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	publisher, err := kafkaout.NewNotificationPublisher(writer, registry)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		registry:   registry,
		logger:     logger,
		clock:      func() time.Time { return time.Now().UTC() },
		engine:     services.NewTransitionEngine(),
		manager:    services.NewApprovalLockManager(services.NewDiffEngine()),
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	return commands.NewChangeStatusCommandHandler(c.orderUoWFactory(), c.engine, c.clock)
}

func (c *CompositionRoot) CreateSubmitEditCommandHandler() commands.SubmitEditCommandHandler {
	return commands.NewSubmitEditCommandHandler(c.orderUoWFactory(), c.manager, c.clock)
}

func (c *CompositionRoot) CreateResolvePendingChangeCommandHandler() commands.ResolvePendingChangeCommandHandler {
	return commands.NewResolvePendingChangeCommandHandler(c.orderUoWFactory(), c.manager, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingFieldChangesQueryHandler() queries.GetPendingFieldChangesQueryHandler {
	return queries.NewGetPendingFieldChangesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateNotifier() *notifications.Notifier {
	return notifications.NewNotifier(c.publisher, c.logger)
}

func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	metrics, err := httpin.NewMetrics(c.registry)
	if err != nil {
		return nil, err
	}

	handlers := httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ChangeStatus:         c.CreateChangeStatusCommandHandler(),
		SubmitEdit:           c.CreateSubmitEditCommandHandler(),
		ResolvePendingChange: c.CreateResolvePendingChangeCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		PendingFieldChanges:  c.CreateGetPendingFieldChangesQueryHandler(),
	}
	return httpin.NewServer(handlers, c.engine, c.CreateNotifier(), metrics, httpin.DefaultRetryPolicy(), c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reminder := jobs.NewFieldChangeReminderJob(
		c.CreateGetPendingFieldChangesQueryHandler(),
		c.CreateNotifier(),
		c.config.ReminderSchedule,
		c.config.ReminderMinAge,
		c.clock,
		c.logger,
	)
	return jobs.NewJobManager(reminder)
}

// Close releases the Kafka writer and the database pool.
func (c *CompositionRoot) Close() error {
	var errList []error
	if err := c.publisher.Close(); err != nil {
		errList = append(errList, err)
	}
	if sqlDB, err := c.gormDB.DB(); err != nil {
		errList = append(errList, err)
	} else if err = sqlDB.Close(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
