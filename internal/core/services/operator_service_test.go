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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type OperatorServiceTestSuite struct {
	suite.Suite
	mockOperatorRepo *MockOperatorRepository
	service          portssvc.OperatorSvcFacade
	testUserID       string
}

func (suite *OperatorServiceTestSuite) SetupTest() {
	suite.mockOperatorRepo = new(MockOperatorRepository)
	suite.service = services.NewOperatorService(suite.mockOperatorRepo)
	suite.testUserID = uuid.NewString()
}

func (suite *OperatorServiceTestSuite) TestCreateOperator_Success() {
	ctx := context.Background()
	req := dto.CreateOperatorRequest{Name: "Maria", Phone: "955111222"}

	suite.mockOperatorRepo.On("SaveOperator", ctx, mock.MatchedBy(func(o domain.Operator) bool {
		return o.Name == req.Name && o.Phone == req.Phone && o.IsActive && o.OperatorID != ""
	})).Return(nil).Once()

	operator, err := suite.service.CreateOperator(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(req.Name, operator.Name)
	suite.mockOperatorRepo.AssertExpectations(suite.T())
}

func (suite *OperatorServiceTestSuite) TestUpdateOperator_NotFound() {
	ctx := context.Background()
	operatorID := uuid.NewString()

	suite.mockOperatorRepo.On("FindOperatorByID", ctx, operatorID).Return(nil, apperrors.ErrNotFound).Once()

	operator, err := suite.service.UpdateOperator(ctx, operatorID, dto.UpdateOperatorRequest{}, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(operator)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OperatorServiceTestSuite) TestListOperators_IncludeInactive() {
	ctx := context.Background()
	operators := []domain.Operator{
		{OperatorID: uuid.NewString(), Name: "Maria", IsActive: true},
		{OperatorID: uuid.NewString(), Name: "Jose", IsActive: false},
	}

	suite.mockOperatorRepo.On("ListOperators", ctx, true).Return(operators, nil).Once()

	got, err := suite.service.ListOperators(ctx, true)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *OperatorServiceTestSuite) TestDeactivateOperator_Success() {
	ctx := context.Background()
	operatorID := uuid.NewString()

	suite.mockOperatorRepo.On("DeactivateOperator", ctx, operatorID, suite.testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateOperator(ctx, operatorID, suite.testUserID)

	suite.Require().NoError(err)
	suite.mockOperatorRepo.AssertExpectations(suite.T())
}

func TestOperatorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OperatorServiceTestSuite))
}
