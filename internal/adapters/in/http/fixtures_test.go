package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

// memoryStore keeps orders with their versions. It implements the unit of
// work factory, the unit of work and the repository at once.
type memoryStore struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	version map[string]ports.Version

	// failCAS makes the next n CompareAndSwap calls lose the race.
	failCAS int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:  make(map[string]*order.Order),
		version: make(map[string]ports.Version),
	}
}

func (s *memoryStore) Create() commands.OrderUoW { return s }

func (s *memoryStore) Begin(context.Context) error    { return nil }
func (s *memoryStore) Commit(context.Context) error   { return nil }
func (s *memoryStore) Rollback(context.Context) error { return nil }

func (s *memoryStore) OrderRepository() ports.OrderRepository { return s }

func (s *memoryStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o.Clone()
	s.version[o.ID().String()] = ports.InitialVersion
	return nil
}

func (s *memoryStore) Get(_ context.Context, id kernel.UUID) (*order.Order, ports.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id.String()]
	if !ok {
		return nil, 0, errs.NewObjectNotFoundError("orderID", id)
	}
	return o.Clone(), s.version[id.String()], nil
}

func (s *memoryStore) CompareAndSwap(_ context.Context, expected ports.Version, o *order.Order) (ports.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := o.ID().String()
	current, ok := s.version[key]
	if !ok {
		return 0, errs.NewObjectNotFoundError("orderID", o.ID())
	}
	if s.failCAS > 0 {
		s.failCAS--
		return 0, errs.NewConcurrentModificationError(key, int64(expected))
	}
	if current != expected {
		return 0, errs.NewConcurrentModificationError(key, int64(expected))
	}
	s.orders[key] = o.Clone()
	s.version[key] = current + 1
	return current + 1, nil
}

func (s *memoryStore) loseNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCAS = n
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notifications ...ports.Notification) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notifications...)
	return len(notifications)
}

func (n *recordingNotifier) all() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.sent...)
}

type stubPendingHandler struct {
	result []queries.PendingFieldChange
	err    error
	seen   []queries.GetPendingFieldChangesQuery
}

func (h *stubPendingHandler) Handle(
	_ context.Context,
	query queries.GetPendingFieldChangesQuery,
) ([]queries.PendingFieldChange, error) {
	h.seen = append(h.seen, query)
	return h.result, h.err
}

type stubListOrdersHandler struct {
	result []queries.OrderSummary
	err    error
	seen   []queries.ListOrdersQuery
}

func (h *stubListOrdersHandler) Handle(
	_ context.Context,
	query queries.ListOrdersQuery,
) ([]queries.OrderSummary, error) {
	h.seen = append(h.seen, query)
	return h.result, h.err
}

type serverFixture struct {
	e        *echo.Echo
	server   *Server
	store    *memoryStore
	notifier *recordingNotifier
	pending  *stubPendingHandler
	list     *stubListOrdersHandler
	metrics  *Metrics
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	store := newMemoryStore()
	clock := commands.Clock(func() time.Time { return testNow })
	manager := services.NewApprovalLockManager(services.NewDiffEngine())
	engine := services.NewTransitionEngine()
	notifier := &recordingNotifier{}
	pending := &stubPendingHandler{}
	list := &stubListOrdersHandler{}

	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	server := NewServer(
		Handlers{
			CreateOrder:          commands.NewCreateOrderCommandHandler(store, clock),
			ChangeStatus:         commands.NewChangeStatusCommandHandler(store, engine, clock),
			SubmitEdit:           commands.NewSubmitEditCommandHandler(store, manager, clock),
			ResolvePendingChange: commands.NewResolvePendingChangeCommandHandler(store, manager, clock),
			GetOrder:             queries.NewGetOrderQueryHandler(store),
			ListOrders:           list,
			PendingFieldChanges:  pending,
		},
		engine,
		notifier,
		metrics,
		RetryPolicy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	doc, err := LoadSpec()
	require.NoError(t, err)
	validator, err := RequestValidator(doc)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(e)
	e.Use(validator)
	RegisterHandlers(e, server)

	return &serverFixture{
		e:        e,
		server:   server,
		store:    store,
		notifier: notifier,
		pending:  pending,
		list:     list,
		metrics:  metrics,
	}
}

func (f *serverFixture) do(t *testing.T, method, path string, body any, actor *Actor) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set("X-User-Id", actor.Id)
		req.Header.Set("X-User-Name", actor.Name)
		req.Header.Set("X-User-Role", string(actor.Role))
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

// seed stores an order restored directly at status.
func (f *serverFixture) seed(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	creator, err := kernel.NewActor("u-asha", "Asha Rao", kernel.RoleEmployee)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), status, domainContent(t), creator, testNow,
		false, nil, order.NewAuditTrail(nil, nil))
	require.NoError(t, err)
	require.NoError(t, f.store.Add(context.Background(), o))
	return o
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func orderPath(o *order.Order, suffix string) string {
	return "/api/v1/orders/" + o.ID().String() + suffix
}

var (
	employee   = &Actor{Id: "u-ravi", Name: "Ravi Kumar", Role: RoleEmployee}
	management = &Actor{Id: "u-meera", Name: "Meera Iyer", Role: RoleManagement}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func contentBody() OrderContent {
	return OrderContent{
		Entity:          "HRV",
		MaterialName:    "Sodium Citrate",
		PoNumber:        "PO-1001",
		Quantity:        Quantity{Value: dec("100"), Unit: "KG"},
		PriceToCustomer: Money{Amount: dec("45.5"), Currency: "USD"},
		Customer:        Contact{Name: "Acme Foods", Country: "IN"},
		Materials: []Material{
			{
				Name:              "Sodium Citrate",
				Quantity:          Quantity{Value: dec("100"), Unit: "KG"},
				CustomerUnitPrice: Money{Amount: dec("45.5"), Currency: "USD"},
			},
		},
	}
}

func domainContent(t *testing.T) order.Content {
	t.Helper()
	content, err := contentBody().toDomain()
	require.NoError(t, err)
	return content
}

func statusOf(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, rec.Body.String())
}
