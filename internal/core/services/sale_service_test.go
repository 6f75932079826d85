package services_test

import (
	"context"
	"testing"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/core/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo *MockSaleRepository
	mockNotifier *MockChangeNotifier
	service      portssvc.SaleSvcFacade
	testUserID   string
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockNotifier = new(MockChangeNotifier)
	suite.service = services.NewSaleService(suite.mockSaleRepo, suite.mockNotifier)
	suite.testUserID = uuid.NewString()
}

// --- RegisterSale Tests ---

func (suite *SaleServiceTestSuite) TestRegisterSale_CashSuccess() {
	ctx := context.Background()
	productID := uuid.NewString()
	req := dto.RegisterSaleRequest{
		Kind:  "CASH",
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: 2}},
	}
	sale := &domain.Sale{
		SaleID: uuid.NewString(),
		Kind:   domain.SaleCash,
		Items: []domain.SaleItem{
			{ProductID: productID, ProductName: "Gaseosa 3L", Quantity: 2, UnitPriceAtSale: decimal.NewFromFloat(8)},
		},
		Total: decimal.NewFromFloat(16),
	}

	suite.mockSaleRepo.On("CreateSale", ctx, mock.MatchedBy(func(input portsrepo.NewSaleInput) bool {
		return input.Kind == domain.SaleCash && input.CustomerID == nil &&
			len(input.Lines) == 1 && input.Lines[0].Quantity == 2 &&
			input.SaleID != "" && input.EntryID != "" && input.UserID == suite.testUserID
	})).Return(sale, nil).Once()
	// One event for the sale, one per touched product.
	suite.mockNotifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return(nil).Times(2)

	got, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(sale, got)
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRegisterSale_CreditSuccess() {
	ctx := context.Background()
	productID := uuid.NewString()
	customerID := uuid.NewString()
	req := dto.RegisterSaleRequest{
		Kind:       "CREDIT",
		CustomerID: &customerID,
		Items:      []dto.SaleItemRequest{{ProductID: productID, Quantity: 1}},
	}
	sale := &domain.Sale{
		SaleID:     uuid.NewString(),
		Kind:       domain.SaleCredit,
		CustomerID: &customerID,
		Total:      decimal.NewFromFloat(4.50),
	}

	suite.mockSaleRepo.On("CreateSale", ctx, mock.MatchedBy(func(input portsrepo.NewSaleInput) bool {
		return input.Kind == domain.SaleCredit && input.CustomerID != nil && *input.CustomerID == customerID
	})).Return(sale, nil).Once()
	// Sale, product, customer and ledger entry all change.
	suite.mockNotifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return(nil).Times(4)

	got, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(sale, got)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRegisterSale_CreditWithoutCustomer() {
	ctx := context.Background()
	req := dto.RegisterSaleRequest{
		Kind:  "CREDIT",
		Items: []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	}

	sale, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleServiceTestSuite) TestRegisterSale_CashWithCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.RegisterSaleRequest{
		Kind:       "CASH",
		CustomerID: &customerID,
		Items:      []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	}

	sale, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestRegisterSale_NoItems() {
	ctx := context.Background()
	req := dto.RegisterSaleRequest{Kind: "CASH"}

	sale, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestRegisterSale_IdempotentReplay() {
	ctx := context.Background()
	key := uuid.NewString()
	existing := &domain.Sale{
		SaleID:         uuid.NewString(),
		Kind:           domain.SaleCash,
		IdempotencyKey: &key,
	}
	req := dto.RegisterSaleRequest{
		Kind:           "CASH",
		Items:          []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		IdempotencyKey: &key,
	}

	suite.mockSaleRepo.On("FindSaleByIdempotencyKey", ctx, key).Return(existing, nil).Once()

	sale, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(existing, sale)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale")
	suite.mockNotifier.AssertNotCalled(suite.T(), "Publish")
}

func (suite *SaleServiceTestSuite) TestRegisterSale_IdempotencyRaceLoserRefetches() {
	ctx := context.Background()
	key := uuid.NewString()
	winner := &domain.Sale{
		SaleID:         uuid.NewString(),
		Kind:           domain.SaleCash,
		IdempotencyKey: &key,
	}
	req := dto.RegisterSaleRequest{
		Kind:           "CASH",
		Items:          []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		IdempotencyKey: &key,
	}

	// First lookup misses, the insert loses the race, the second lookup hits.
	suite.mockSaleRepo.On("FindSaleByIdempotencyKey", ctx, key).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSaleRepo.On("CreateSale", ctx, mock.AnythingOfType("repositories.NewSaleInput")).Return(nil, apperrors.ErrDuplicate).Once()
	suite.mockSaleRepo.On("FindSaleByIdempotencyKey", ctx, key).Return(winner, nil).Once()

	sale, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(winner, sale)
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertNotCalled(suite.T(), "Publish")
}

func (suite *SaleServiceTestSuite) TestRegisterSale_InsufficientStock() {
	ctx := context.Background()
	productID := uuid.NewString()
	req := dto.RegisterSaleRequest{
		Kind:  "CASH",
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: 5}},
	}
	stockErr := &apperrors.InsufficientStockError{
		ProductID: productID,
		Requested: 5,
		Available: 2,
	}

	suite.mockSaleRepo.On("CreateSale", ctx, mock.AnythingOfType("repositories.NewSaleInput")).Return(nil, stockErr).Once()

	sale, err := suite.service.RegisterSale(ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(sale)
	var insufficientErr *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &insufficientErr)
	suite.Equal(int64(2), insufficientErr.Available)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Publish")
}

// --- Read Tests ---

func (suite *SaleServiceTestSuite) TestGetSaleByID_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	expected := &domain.Sale{SaleID: saleID}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(expected, nil).Once()

	sale, err := suite.service.GetSaleByID(ctx, saleID)

	suite.Require().NoError(err)
	suite.Equal(expected, sale)
}

func (suite *SaleServiceTestSuite) TestListSales_Success() {
	ctx := context.Background()
	sales := []domain.Sale{{SaleID: uuid.NewString(), Kind: domain.SaleCash}}
	params := dto.ListSalesParams{Limit: 20}

	suite.mockSaleRepo.On("ListSales", ctx, 20, (*string)(nil)).Return(sales, nil, nil).Once()

	resp, err := suite.service.ListSales(ctx, params)

	suite.Require().NoError(err)
	suite.Len(resp.Sales, 1)
	suite.Nil(resp.NextToken)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
