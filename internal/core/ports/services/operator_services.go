package services

import (
	"context"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/dto"
)

// OperatorSvcFacade defines operations for shop operator accounts.
// Operators are small in number so reads are not paginated.
type OperatorSvcFacade interface {
	// GetOperatorByID retrieves a specific operator.
	GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)

	// ListOperators retrieves all operators, optionally including inactive ones.
	ListOperators(ctx context.Context, includeInactive bool) ([]domain.Operator, error)

	// CreateOperator persists a new operator.
	CreateOperator(ctx context.Context, req dto.CreateOperatorRequest, userID string) (*domain.Operator, error)

	// UpdateOperator updates an operator's details.
	UpdateOperator(ctx context.Context, operatorID string, req dto.UpdateOperatorRequest, userID string) (*domain.Operator, error)

	// DeactivateOperator marks an operator as inactive.
	DeactivateOperator(ctx context.Context, operatorID string, userID string) error
}
