package commands_test

import (
	"context"
	"testing"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/customer"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/outbox"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/core/domain/model/settings"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, r *returns.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReturnRepository) Update(ctx context.Context, r *returns.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}
func (m *MockReturnRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Return, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returns.Return), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}
func (m *MockCustomerRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) AppendStatusHistory(ctx context.Context, e *audit.StatusHistory) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockAuditRepository) AppendActivity(ctx context.Context, e *audit.ActivityLog) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockAuditRepository) AppendConsent(ctx context.Context, e *audit.ConsentLog) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockOutboxRepository) Update(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockOutboxRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

// mockTx embeds the transaction lifecycle shared by all UoW mocks.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockOrderUoW wires the repositories touched by order lifecycle commands.
// Repositories are plain fields instead of expectations: every handler grabs
// them, the interesting assertions live on the repositories themselves.
type MockOrderUoW struct {
	mockTx
	Orders    *MockOrderRepository
	Customers *MockCustomerRepository
	Audits    *MockAuditRepository
	Outbox    *MockOutboxRepository
}

func NewMockOrderUoW() *MockOrderUoW {
	return &MockOrderUoW{
		Orders:    new(MockOrderRepository),
		Customers: new(MockCustomerRepository),
		Audits:    new(MockAuditRepository),
		Outbox:    new(MockOutboxRepository),
	}
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository       { return m.Orders }
func (m *MockOrderUoW) CustomerRepository() ports.CustomerRepository { return m.Customers }
func (m *MockOrderUoW) AuditRepository() ports.AuditRepository       { return m.Audits }
func (m *MockOrderUoW) OutboxRepository() ports.OutboxRepository     { return m.Outbox }

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockReturnUoW struct {
	mockTx
	Returns   *MockReturnRepository
	Orders    *MockOrderRepository
	Customers *MockCustomerRepository
	Audits    *MockAuditRepository
	Outbox    *MockOutboxRepository
}

func NewMockReturnUoW() *MockReturnUoW {
	return &MockReturnUoW{
		Returns:   new(MockReturnRepository),
		Orders:    new(MockOrderRepository),
		Customers: new(MockCustomerRepository),
		Audits:    new(MockAuditRepository),
		Outbox:    new(MockOutboxRepository),
	}
}

func (m *MockReturnUoW) ReturnRepository() ports.ReturnRepository     { return m.Returns }
func (m *MockReturnUoW) OrderRepository() ports.OrderRepository       { return m.Orders }
func (m *MockReturnUoW) CustomerRepository() ports.CustomerRepository { return m.Customers }
func (m *MockReturnUoW) AuditRepository() ports.AuditRepository       { return m.Audits }
func (m *MockReturnUoW) OutboxRepository() ports.OutboxRepository     { return m.Outbox }

type MockReturnUoWFactory struct{ mock.Mock }

func (m *MockReturnUoWFactory) Create() commands.ReturnUoW {
	args := m.Called()
	return args.Get(0).(commands.ReturnUoW)
}

type MockTicketUoW struct {
	mockTx
	Tickets   *MockTicketRepository
	Customers *MockCustomerRepository
	Audits    *MockAuditRepository
	Outbox    *MockOutboxRepository
}

func NewMockTicketUoW() *MockTicketUoW {
	return &MockTicketUoW{
		Tickets:   new(MockTicketRepository),
		Customers: new(MockCustomerRepository),
		Audits:    new(MockAuditRepository),
		Outbox:    new(MockOutboxRepository),
	}
}

func (m *MockTicketUoW) TicketRepository() ports.TicketRepository     { return m.Tickets }
func (m *MockTicketUoW) CustomerRepository() ports.CustomerRepository { return m.Customers }
func (m *MockTicketUoW) AuditRepository() ports.AuditRepository       { return m.Audits }
func (m *MockTicketUoW) OutboxRepository() ports.OutboxRepository     { return m.Outbox }

type MockTicketUoWFactory struct{ mock.Mock }

func (m *MockTicketUoWFactory) Create() commands.TicketUoW {
	args := m.Called()
	return args.Get(0).(commands.TicketUoW)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) UpsertSetting(ctx context.Context, s *settings.Setting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSettingsRepository) GetSetting(ctx context.Context, key string) (*settings.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Setting), args.Error(1)
}
func (m *MockSettingsRepository) AddPolicy(ctx context.Context, p *settings.PolicyVersion) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockSettingsRepository) GetActivePolicy(ctx context.Context, kind settings.PolicyKind) (*settings.PolicyVersion, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.PolicyVersion), args.Error(1)
}
func (m *MockSettingsRepository) RetirePolicies(ctx context.Context, kind settings.PolicyKind) error {
	args := m.Called(ctx, kind)
	return args.Error(0)
}

type MockSettingsUoW struct {
	mockTx
	Settings *MockSettingsRepository
	Audits   *MockAuditRepository
}

func NewMockSettingsUoW() *MockSettingsUoW {
	return &MockSettingsUoW{
		Settings: new(MockSettingsRepository),
		Audits:   new(MockAuditRepository),
	}
}

func (m *MockSettingsUoW) SettingsRepository() ports.SettingsRepository { return m.Settings }
func (m *MockSettingsUoW) AuditRepository() ports.AuditRepository       { return m.Audits }

type MockSettingsUoWFactory struct{ mock.Mock }

func (m *MockSettingsUoWFactory) Create() commands.SettingsUoW {
	args := m.Called()
	return args.Get(0).(commands.SettingsUoW)
}

type MockOutboxUoW struct {
	mockTx
	Outbox *MockOutboxRepository
}

func NewMockOutboxUoW() *MockOutboxUoW {
	return &MockOutboxUoW{Outbox: new(MockOutboxRepository)}
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository { return m.Outbox }

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

// test fixtures

func testCustomer(t *testing.T, id kernel.UUID) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(
		id, kernel.NewUUID(), "Marta Janssens", "marta@example.com",
		customer.LanguageEN, customer.Profile{}, time.Now().UTC())
	require.NoError(t, err)
	return c
}

func testItemSpecs(t *testing.T) []order.ItemSpec {
	t.Helper()
	price, err := kernel.NewMoney("25.00", kernel.DefaultCurrency)
	require.NoError(t, err)
	return []order.ItemSpec{{ProductName: "Shirt", Quantity: 2, UnitPrice: price}}
}

func testOrderInStatus(t *testing.T, customerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney("25.00", kernel.DefaultCurrency)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
		ProductName: "Shirt", Quantity: 2, UnitPrice: price,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	aggregate, err := order.RestoreOrder(order.RestoreSpec{
		ID:            kernel.NewUUID(),
		OrderNumber:   kernel.NewReference("ORD", now),
		CustomerID:    customerID,
		AdminID:       kernel.NewUUID(),
		Status:        status,
		Items:         []*order.Item{item},
		TotalAmount:   item.Subtotal(),
		Currency:      kernel.DefaultCurrency,
		PaymentStatus: order.PaymentPending,
		CreatedAt:     now,
	})
	require.NoError(t, err)
	return aggregate
}

func testReturnItems(t *testing.T) []commands.ReturnItemInput {
	t.Helper()
	return []commands.ReturnItemInput{{
		OrderItemID: kernel.NewUUID(),
		Quantity:    1,
		Reason:      returns.ReasonWrongSize,
		Condition:   "unworn",
	}}
}
