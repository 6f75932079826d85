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
type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockNotifier     *MockChangeNotifier
	service          portssvc.CustomerSvcFacade
	testUserID       string
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockNotifier = new(MockChangeNotifier)
	suite.service = services.NewCustomerService(suite.mockCustomerRepo, suite.mockNotifier)
	suite.testUserID = uuid.NewString()
}

// --- CreateCustomer Tests ---

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		Name:  "Doña Rosa",
		Phone: "987654321",
	}

	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Name == req.Name && c.Phone == req.Phone && c.IsActive &&
			c.OutstandingBalance.IsZero() && c.CustomerID != ""
	})).Return(nil).Once()
	suite.mockNotifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.Equal(req.Name, customer.Name)
	suite.True(customer.OutstandingBalance.IsZero())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

// --- UpdateCustomer Tests ---

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_PartialFields() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID:         customerID,
		Name:               "Doña Rosa",
		Phone:              "987654321",
		OutstandingBalance: decimal.NewFromFloat(12.50),
		IsActive:           true,
	}
	newPhone := "912345678"
	req := dto.UpdateCustomerRequest{Phone: &newPhone}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockCustomerRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Phone == newPhone && c.Name == existing.Name &&
			c.OutstandingBalance.Equal(existing.OutstandingBalance) &&
			c.LastUpdatedBy == suite.testUserID
	})).Return(nil).Once()
	suite.mockNotifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return(nil).Once()

	customer, err := suite.service.UpdateCustomer(ctx, customerID, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(newPhone, customer.Phone)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{}, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeactivateCustomer Tests ---

func (suite *CustomerServiceTestSuite) TestDeactivateCustomer_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID:         customerID,
		OutstandingBalance: decimal.Zero,
		IsActive:           true,
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockCustomerRepo.On("DeactivateCustomer", ctx, customerID, suite.testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return(nil).Once()

	err := suite.service.DeactivateCustomer(ctx, customerID, suite.testUserID)

	suite.Require().NoError(err)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestDeactivateCustomer_OwesBalance() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID:         customerID,
		OutstandingBalance: decimal.NewFromFloat(31.20),
		IsActive:           true,
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()

	err := suite.service.DeactivateCustomer(ctx, customerID, suite.testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "DeactivateCustomer")
}

// --- ListCustomers Tests ---

func (suite *CustomerServiceTestSuite) TestListCustomers_Success() {
	ctx := context.Background()
	customers := []domain.Customer{
		{CustomerID: uuid.NewString(), Name: "Doña Rosa"},
		{CustomerID: uuid.NewString(), Name: "Don Lucho"},
	}
	params := dto.ListCustomersParams{Limit: 20}

	suite.mockCustomerRepo.On("ListCustomers", ctx, 20, (*string)(nil), false).Return(customers, nil, nil).Once()

	resp, err := suite.service.ListCustomers(ctx, params)

	suite.Require().NoError(err)
	suite.Len(resp.Customers, 2)
	suite.Nil(resp.NextToken)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
