package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	created   time.Time
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(orderrepo.AutoMigrate(db))

	suite.handler = queries.NewListOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
}

func (suite *ListOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE " + strings.Join(orderrepo.Tables(), ", ")).Error
	suite.Require().NoError(err)
	suite.created = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), suite.query(queries.ListOrdersFilter{}))

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_NoFilter_ReturnsNewestFirst() {
	oldest := suite.store("HRVPOR2024-0001", "HRV", order.POReceivedFromClient, "Asha Rao")
	newest := suite.store("HRVPOR2024-0002", "HRV", order.POApproved, "Ravi Kumar")

	result, err := suite.handler.Handle(context.Background(), suite.query(queries.ListOrdersFilter{}))

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(newest.ID().IsEqual(result[0].ID))
	suite.True(oldest.ID().IsEqual(result[1].ID))

	suite.Equal("HRVPOR2024-0002", result[0].PONumber)
	suite.Equal("HRV", result[0].Entity)
	suite.Equal("Acme Foods", result[0].CustomerName)
	suite.Equal(order.POApproved, result[0].Status)
	suite.False(result[0].IsLocked)
	suite.Equal("id-Ravi Kumar", result[0].CreatedByID)
	suite.Equal("Ravi Kumar", result[0].CreatedByName)
	suite.WithinDuration(newest.CreatedAt(), result[0].CreatedAt, time.Second)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_FiltersCombine() {
	match := suite.store("HRVPOR2024-0001", "HRV", order.POApproved, "Ravi Kumar")
	suite.store("HRVPOR2024-0002", "HRV", order.POApproved, "Asha Rao")
	suite.store("GLBPOR2024-0003", "Globex", order.POApproved, "Ravi Kumar")
	suite.store("HRVPOR2024-0004", "HRV", order.Completed, "Ravi Kumar")

	approved := order.POApproved
	result, err := suite.handler.Handle(context.Background(), suite.query(queries.ListOrdersFilter{
		Status:      &approved,
		Entity:      "HRV",
		CreatedByID: "id-Ravi Kumar",
	}))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(match.ID().IsEqual(result[0].ID))
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_CreatorFilterGivesOneUsersOrders() {
	suite.store("HRVPOR2024-0001", "HRV", order.POApproved, "Ravi Kumar")
	suite.store("HRVPOR2024-0002", "Globex", order.Completed, "Ravi Kumar")
	suite.store("HRVPOR2024-0003", "HRV", order.POApproved, "Asha Rao")

	result, err := suite.handler.Handle(context.Background(),
		suite.query(queries.ListOrdersFilter{CreatedByID: "id-Ravi Kumar"}))

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	for _, summary := range result {
		suite.Equal("Ravi Kumar", summary.CreatedByName)
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.ListOrdersQuery{})

	suite.Require().ErrorIs(err, queries.ErrListOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	suite.store("HRVPOR2024-0001", "HRV", order.POApproved, "Ravi Kumar")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, suite.query(queries.ListOrdersFilter{}))

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) query(filter queries.ListOrdersFilter) queries.ListOrdersQuery {
	query, err := queries.NewListOrdersQuery(filter)
	suite.Require().NoError(err)
	return query
}

// store saves an order one hour after the previously stored one.
func (suite *ListOrdersQueryHandlerTestSuite) store(poNumber, entity string, status order.Status, creator string) *order.Order {
	suite.created = suite.created.Add(time.Hour)
	content := newContent(suite.T(), poNumber, "Acme Foods")
	content.Entity = entity

	o, err := order.RestoreOrder(kernel.NewUUID(), status, content,
		newActor(suite.T(), creator, kernel.RoleEmployee), suite.created,
		false, nil, order.NewAuditTrail(nil, nil))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}
