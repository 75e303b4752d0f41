package commands_test

import (
	"context"
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, ports.Version, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Get(1).(ports.Version), args.Error(2)
}

func (m *MockOrderRepository) CompareAndSwap(
	ctx context.Context,
	expected ports.Version,
	o *order.Order,
) (ports.Version, error) {
	args := m.Called(ctx, expected, o)
	return args.Get(0).(ports.Version), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

var testNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func fixedClock() commands.Clock {
	return func() time.Time { return testNow }
}

// newUoW wires a factory that hands out a single unit of work backed by repo.
func newUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func mustActor(t *testing.T, name string, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor("id-"+name, name, role)
	require.NoError(t, err)
	return actor
}

func kg(t *testing.T, value int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.NewFromInt(value), "KG")
	require.NoError(t, err)
	return q
}

func sampleContent(t *testing.T) order.Content {
	t.Helper()
	price, err := kernel.NewMoney(decimal.RequireFromString("45.5"), "USD")
	require.NoError(t, err)
	return order.Content{
		Entity:          "HRV",
		MaterialName:    "Sodium Citrate",
		Quantity:        kg(t, 100),
		PriceToCustomer: price,
		Customer:        order.Contact{Name: "Acme Foods"},
		Materials: []order.MaterialItem{
			{ID: kernel.NewUUID(), Name: "Sodium Citrate", Quantity: kg(t, 100), CustomerUnitPrice: price},
		},
	}
}

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), status, sampleContent(t),
		mustActor(t, "Asha Rao", kernel.RoleEmployee), testNow, false, nil, order.NewAuditTrail(nil, nil))
	require.NoError(t, err)
	return o
}

func lockedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := storedOrder(t, order.POApproved)
	proposed := o.Content()
	proposed.Quantity = kg(t, 150)
	request, err := order.NewFieldChangeRequest(kernel.NewUUID(), mustActor(t, "Ravi Kumar", kernel.RoleEmployee),
		testNow, []order.FieldChange{{Field: order.FieldQuantity, Label: "Quantity", OldValue: "100 KG", NewValue: "150 KG"}},
		o.Content(), proposed)
	require.NoError(t, err)
	require.NoError(t, o.LockForFieldChanges(request))
	return o
}
