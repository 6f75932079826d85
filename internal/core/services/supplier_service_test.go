package services_test

import (
	"context"
	"testing"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/core/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type SupplierServiceTestSuite struct {
	suite.Suite
	mockSupplierRepo *MockSupplierRepository
	mockProductRepo  *MockProductRepository
	mockNotifier     *MockChangeNotifier
	service          portssvc.SupplierSvcFacade
	testUserID       string
}

func (suite *SupplierServiceTestSuite) SetupTest() {
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockNotifier = new(MockChangeNotifier)
	suite.service = services.NewSupplierService(suite.mockSupplierRepo, suite.mockProductRepo, suite.mockNotifier)
	suite.testUserID = uuid.NewString()
}

// --- CreateSupplier Tests ---

func (suite *SupplierServiceTestSuite) TestCreateSupplier_Success() {
	ctx := context.Background()
	req := dto.CreateSupplierRequest{
		Name:         "Distribuidora Norte",
		LeadTimeDays: 3,
	}

	suite.mockSupplierRepo.On("SaveSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.Name == req.Name && s.LeadTimeDays == 3 && s.IsActive && s.SupplierID != ""
	})).Return(nil).Once()

	supplier, err := suite.service.CreateSupplier(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(req.Name, supplier.Name)
	suite.mockSupplierRepo.AssertExpectations(suite.T())
}

// --- CreatePurchase Tests ---

func (suite *SupplierServiceTestSuite) TestCreatePurchase_Success() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	productID := uuid.NewString()
	supplier := &domain.Supplier{SupplierID: supplierID, IsActive: true}
	product := &domain.Product{ProductID: productID, IsActive: true}
	req := dto.CreatePurchaseRequest{
		ProductID: productID,
		Quantity:  24,
		UnitCost:  decimal.NewFromFloat(2.80),
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).Return(supplier, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()
	suite.mockSupplierRepo.On("SavePurchase", ctx, mock.MatchedBy(func(p domain.SupplierPurchase) bool {
		return p.SupplierID == supplierID && p.ProductID == productID &&
			p.Status == domain.PurchaseOrdered &&
			p.Total.Equal(decimal.NewFromFloat(67.20))
	})).Return(nil).Once()

	purchase, err := suite.service.CreatePurchase(ctx, supplierID, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseOrdered, purchase.Status)
	suite.True(purchase.Total.Equal(decimal.NewFromFloat(67.20)))
	suite.mockSupplierRepo.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestCreatePurchase_InactiveSupplier() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	supplier := &domain.Supplier{SupplierID: supplierID, IsActive: false}
	req := dto.CreatePurchaseRequest{
		ProductID: uuid.NewString(),
		Quantity:  10,
		UnitCost:  decimal.NewFromFloat(1),
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).Return(supplier, nil).Once()

	purchase, err := suite.service.CreatePurchase(ctx, supplierID, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSupplierRepo.AssertNotCalled(suite.T(), "SavePurchase")
}

func (suite *SupplierServiceTestSuite) TestCreatePurchase_NonPositiveUnitCost() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		ProductID: uuid.NewString(),
		Quantity:  10,
		UnitCost:  decimal.Zero,
	}

	purchase, err := suite.service.CreatePurchase(ctx, uuid.NewString(), req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSupplierRepo.AssertNotCalled(suite.T(), "FindSupplierByID")
}

// --- ReceivePurchase Tests ---

func (suite *SupplierServiceTestSuite) TestReceivePurchase_Success() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	productID := uuid.NewString()
	purchase := &domain.SupplierPurchase{
		PurchaseID: purchaseID,
		ProductID:  productID,
		Quantity:   24,
		Status:     domain.PurchaseReceived,
	}
	product := &domain.Product{ProductID: productID, Stock: 30}

	suite.mockSupplierRepo.On("ReceivePurchase", ctx, purchaseID, suite.testUserID, mock.AnythingOfType("time.Time")).Return(purchase, product, nil).Once()
	suite.mockNotifier.On("Publish", ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
		return e.Topic == domain.TopicProducts && e.EntityID == productID
	})).Return(nil).Once()

	got, err := suite.service.ReceivePurchase(ctx, purchaseID, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseReceived, got.Status)
	suite.mockSupplierRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestReceivePurchase_AlreadyReceived() {
	ctx := context.Background()
	purchaseID := uuid.NewString()

	suite.mockSupplierRepo.On("ReceivePurchase", ctx, purchaseID, suite.testUserID, mock.AnythingOfType("time.Time")).Return(nil, nil, apperrors.ErrValidation).Once()

	got, err := suite.service.ReceivePurchase(ctx, purchaseID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Publish")
}

// --- ListPurchasesBySupplier Tests ---

func (suite *SupplierServiceTestSuite) TestListPurchasesBySupplier_UnknownSupplier() {
	ctx := context.Background()
	supplierID := uuid.NewString()

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).Return(nil, apperrors.ErrNotFound).Once()

	purchases, err := suite.service.ListPurchasesBySupplier(ctx, supplierID, 20)

	suite.Require().Error(err)
	suite.Nil(purchases)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSupplierRepo.AssertNotCalled(suite.T(), "ListPurchasesBySupplier")
}

func TestSupplierServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SupplierServiceTestSuite))
}
