package services_test

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	args := m.Called(ctx, code)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Product, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeInactive)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return products, token, args.Error(2)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, productID string, changes domain.ProductChanges, userID string, now time.Time) (*domain.Product, error) {
	args := m.Called(ctx, productID, changes, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, productID string, delta int64, userID string, now time.Time) (*domain.Product, error) {
	args := m.Called(ctx, productID, delta, userID, now)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

func (m *MockProductRepository) ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceChangeRecord, error) {
	args := m.Called(ctx, productID)
	var records []domain.PriceChangeRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.PriceChangeRecord)
	}
	return records, args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	var products map[string]domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).(map[string]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, productID, delta, userID, now)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeInactive)
	var customers []domain.Customer
	if args.Get(0) != nil {
		customers = args.Get(0).([]domain.Customer)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return customers, token, args.Error(2)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error {
	args := m.Called(ctx, customerID, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, customerID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) SumEntriesByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, *domain.Customer, error) {
	args := m.Called(ctx, entry)
	var stored *domain.LedgerEntry
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.LedgerEntry)
	}
	var customer *domain.Customer
	if args.Get(1) != nil {
		customer = args.Get(1).(*domain.Customer)
	}
	return stored, customer, args.Error(2)
}

func (m *MockLedgerRepository) AmendEntry(ctx context.Context, entryID string, newAmount decimal.Decimal, newDescription string, newMethod domain.PaymentMethod, userID string, now time.Time) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, newAmount, newDescription, newMethod, userID, now)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) RemoveEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockLedgerRepository) RepairCustomerBalance(ctx context.Context, customerID string, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID, userID, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock SaleRepository ---

type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	var sale *domain.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*domain.Sale)
	}
	return sale, args.Error(1)
}

func (m *MockSaleRepository) FindSaleByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error) {
	args := m.Called(ctx, key)
	var sale *domain.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*domain.Sale)
	}
	return sale, args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sales, token, args.Error(2)
}

func (m *MockSaleRepository) CreateSale(ctx context.Context, input portsrepo.NewSaleInput) (*domain.Sale, error) {
	args := m.Called(ctx, input)
	var sale *domain.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*domain.Sale)
	}
	return sale, args.Error(1)
}

// --- Mock SupplierRepository ---

type MockSupplierRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierRepositoryFacade = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	var supplier *domain.Supplier
	if args.Get(0) != nil {
		supplier = args.Get(0).(*domain.Supplier)
	}
	return supplier, args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Supplier, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeInactive)
	var suppliers []domain.Supplier
	if args.Get(0) != nil {
		suppliers = args.Get(0).([]domain.Supplier)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return suppliers, token, args.Error(2)
}

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeactivateSupplier(ctx context.Context, supplierID string, userID string, now time.Time) error {
	args := m.Called(ctx, supplierID, userID, now)
	return args.Error(0)
}

func (m *MockSupplierRepository) SavePurchase(ctx context.Context, purchase domain.SupplierPurchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.SupplierPurchase, error) {
	args := m.Called(ctx, purchaseID)
	var purchase *domain.SupplierPurchase
	if args.Get(0) != nil {
		purchase = args.Get(0).(*domain.SupplierPurchase)
	}
	return purchase, args.Error(1)
}

func (m *MockSupplierRepository) ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.SupplierPurchase, *string, error) {
	args := m.Called(ctx, supplierID, limit, nextToken)
	var purchases []domain.SupplierPurchase
	if args.Get(0) != nil {
		purchases = args.Get(0).([]domain.SupplierPurchase)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return purchases, token, args.Error(2)
}

func (m *MockSupplierRepository) ReceivePurchase(ctx context.Context, purchaseID string, userID string, now time.Time) (*domain.SupplierPurchase, *domain.Product, error) {
	args := m.Called(ctx, purchaseID, userID, now)
	var purchase *domain.SupplierPurchase
	if args.Get(0) != nil {
		purchase = args.Get(0).(*domain.SupplierPurchase)
	}
	var product *domain.Product
	if args.Get(1) != nil {
		product = args.Get(1).(*domain.Product)
	}
	return purchase, product, args.Error(2)
}

func (m *MockSupplierRepository) CancelPurchase(ctx context.Context, purchaseID string, userID string, now time.Time) error {
	args := m.Called(ctx, purchaseID, userID, now)
	return args.Error(0)
}

// --- Mock OperatorRepository ---

type MockOperatorRepository struct {
	mock.Mock
}

var _ portsrepo.OperatorRepositoryFacade = (*MockOperatorRepository)(nil)

func (m *MockOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, operatorID)
	var operator *domain.Operator
	if args.Get(0) != nil {
		operator = args.Get(0).(*domain.Operator)
	}
	return operator, args.Error(1)
}

func (m *MockOperatorRepository) ListOperators(ctx context.Context, includeInactive bool) ([]domain.Operator, error) {
	args := m.Called(ctx, includeInactive)
	var operators []domain.Operator
	if args.Get(0) != nil {
		operators = args.Get(0).([]domain.Operator)
	}
	return operators, args.Error(1)
}

func (m *MockOperatorRepository) SaveOperator(ctx context.Context, operator domain.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *MockOperatorRepository) UpdateOperator(ctx context.Context, operator domain.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *MockOperatorRepository) DeactivateOperator(ctx context.Context, operatorID string, userID string, now time.Time) error {
	args := m.Called(ctx, operatorID, userID, now)
	return args.Error(0)
}

// --- Mock ChangeNotifier ---

type MockChangeNotifier struct {
	mock.Mock
}

var _ portssvc.ChangeNotifier = (*MockChangeNotifier)(nil)

func (m *MockChangeNotifier) Publish(ctx context.Context, event domain.ChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockChangeNotifier) Subscribe(ctx context.Context, topic domain.Topic) (<-chan domain.ChangeEvent, func(), error) {
	args := m.Called(ctx, topic)
	var ch <-chan domain.ChangeEvent
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan domain.ChangeEvent)
	}
	var cancel func()
	if args.Get(1) != nil {
		cancel = args.Get(1).(func())
	}
	return ch, cancel, args.Error(2)
}

func (m *MockChangeNotifier) Close() error {
	args := m.Called()
	return args.Error(0)
}
