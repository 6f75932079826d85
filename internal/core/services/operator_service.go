package services

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/google/uuid"
)

// operatorService provides operations on shop operator accounts.
type operatorService struct {
	operatorRepo portsrepo.OperatorRepositoryFacade
}

// NewOperatorService creates a new operator service.
func NewOperatorService(operatorRepo portsrepo.OperatorRepositoryFacade) portssvc.OperatorSvcFacade {
	return &operatorService{
		operatorRepo: operatorRepo,
	}
}

// Ensure operatorService implements the portssvc.OperatorSvcFacade interface
var _ portssvc.OperatorSvcFacade = (*operatorService)(nil)

// GetOperatorByID retrieves an operator by its ID.
func (s *operatorService) GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	return s.operatorRepo.FindOperatorByID(ctx, operatorID)
}

// ListOperators retrieves all operators, active first.
func (s *operatorService) ListOperators(ctx context.Context, includeInactive bool) ([]domain.Operator, error) {
	return s.operatorRepo.ListOperators(ctx, includeInactive)
}

// CreateOperator persists a new operator.
func (s *operatorService) CreateOperator(ctx context.Context, req dto.CreateOperatorRequest, userID string) (*domain.Operator, error) {
	now := time.Now().UTC()
	operator := domain.Operator{
		OperatorID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.operatorRepo.SaveOperator(ctx, operator); err != nil {
		return nil, err
	}
	return &operator, nil
}

// UpdateOperator updates an operator's details.
func (s *operatorService) UpdateOperator(ctx context.Context, operatorID string, req dto.UpdateOperatorRequest, userID string) (*domain.Operator, error) {
	existing, err := s.operatorRepo.FindOperatorByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := s.operatorRepo.UpdateOperator(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeactivateOperator marks an operator as inactive. Past sales and ledger
// entries keep referencing it.
func (s *operatorService) DeactivateOperator(ctx context.Context, operatorID string, userID string) error {
	return s.operatorRepo.DeactivateOperator(ctx, operatorID, userID, time.Now().UTC())
}
