package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/bodegapos/bodega-backend/internal/handlers"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) GetProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListProductsResponse), args.Error(1)
}
func (m *MockProductService) ListPriceHistory(ctx context.Context, productID string, limit int) ([]domain.PriceChangeRecord, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceChangeRecord), args.Error(1)
}
func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	args := m.Called(ctx, productID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalesResponse), args.Error(1)
}
func (m *MockSaleService) RegisterSale(ctx context.Context, req dto.RegisterSaleRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Test Suite ---
type ProductHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockProductService *MockProductService
	mockSaleService    *MockSaleService
	operatorID         string
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.operatorID = uuid.NewString()

	suite.mockProductService = new(MockProductService)
	suite.mockSaleService = new(MockSaleService)

	// Register the real route tree with mocked services behind it
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Product: suite.mockProductService,
		Sale:    suite.mockSaleService,
	})
}

func (suite *ProductHandlerTestSuite) newRequest(method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.OperatorHeader, suite.operatorID)
	return req
}

// --- Test Cases ---

func (suite *ProductHandlerTestSuite) TestCreateProduct_Success() {
	reqBody := dto.CreateProductRequest{
		Name:      "Arroz Costeño 1kg",
		Code:      "7750243001234",
		Stock:     40,
		CostPrice: decimal.RequireFromString("3.20"),
		SalePrice: decimal.RequireFromString("4.50"),
		Category:  "abarrotes",
	}
	created := &domain.Product{
		ProductID:              uuid.NewString(),
		Name:                   reqBody.Name,
		Code:                   reqBody.Code,
		Stock:                  reqBody.Stock,
		CostPrice:              reqBody.CostPrice,
		SalePrice:              reqBody.SalePrice,
		Category:               reqBody.Category,
		LowStockThreshold:      domain.DefaultLowStockThreshold,
		CriticalStockThreshold: domain.DefaultCriticalStockThreshold,
		IsActive:               true,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: suite.operatorID,
		},
	}

	suite.mockProductService.On("CreateProduct",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateProductRequest) bool {
			return r.Code == reqBody.Code && r.Stock == 40
		}),
		suite.operatorID,
	).Return(created, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/products", reqBody))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ProductID, resp.ProductID)
	suite.Equal(reqBody.Code, resp.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_MissingOperatorHeader() {
	req := suite.newRequest(http.MethodPost, "/api/v1/products", dto.CreateProductRequest{
		Name: "Aceite Primor 1L",
		Code: "7751271001112",
	})
	req.Header.Del(middleware.OperatorHeader)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductHandlerTestSuite) TestGetProduct_NotFound() {
	productID := uuid.NewString()
	suite.mockProductService.On("GetProductByID", mock.Anything, productID).
		Return(nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodGet, "/api/v1/products/"+productID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestAdjustStock_InsufficientStock() {
	productID := uuid.NewString()
	stockErr := &apperrors.InsufficientStockError{
		ProductID:   productID,
		ProductName: "Leche Gloria",
		Requested:   12,
		Available:   3,
	}
	suite.mockProductService.On("AdjustStock",
		mock.Anything,
		productID,
		mock.AnythingOfType("dto.AdjustStockRequest"),
		suite.operatorID,
	).Return(nil, stockErr).Once()

	w := httptest.NewRecorder()
	body := dto.AdjustStockRequest{Delta: -12, Reason: "spoilage"}
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/products/"+productID+"/stock-adjustments", body))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(productID, resp["productID"])
	suite.Equal(float64(3), resp["available"])
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestRegisterSale_Success() {
	customerID := uuid.NewString()
	saleID := uuid.NewString()
	reqBody := dto.RegisterSaleRequest{
		Kind:       string(domain.SaleCredit),
		CustomerID: &customerID,
		Items: []dto.SaleItemRequest{
			{ProductID: uuid.NewString(), Quantity: 2},
		},
	}
	registered := &domain.Sale{
		SaleID:     saleID,
		Kind:       domain.SaleCredit,
		CustomerID: &customerID,
		Items: []domain.SaleItem{
			{ProductID: reqBody.Items[0].ProductID, ProductName: "Gaseosa", Quantity: 2, UnitPriceAtSale: decimal.RequireFromString("3.50")},
		},
		Total: decimal.RequireFromString("7.00"),
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: suite.operatorID,
		},
	}

	suite.mockSaleService.On("RegisterSale",
		mock.Anything,
		mock.MatchedBy(func(r dto.RegisterSaleRequest) bool {
			return r.Kind == "CREDIT" && r.CustomerID != nil && *r.CustomerID == customerID
		}),
		suite.operatorID,
	).Return(registered, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/sales", reqBody))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(saleID, resp.SaleID)
	suite.Require().Len(resp.Items, 1)
	suite.Equal("7.00", resp.Items[0].Subtotal.StringFixed(2))
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestRegisterSale_InvalidKindRejectedAtBinding() {
	reqBody := dto.RegisterSaleRequest{
		Kind: "BARTER",
		Items: []dto.SaleItemRequest{
			{ProductID: uuid.NewString(), Quantity: 1},
		},
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/sales", reqBody))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "RegisterSale", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
