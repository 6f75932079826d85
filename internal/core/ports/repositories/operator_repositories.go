package repositories

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
)

// OperatorRepositoryFacade defines operations for operator data.
type OperatorRepositoryFacade interface {
	// FindOperatorByID retrieves a specific operator.
	FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)

	// ListOperators retrieves all operators, active first.
	ListOperators(ctx context.Context, includeInactive bool) ([]domain.Operator, error)

	// SaveOperator persists a new operator.
	SaveOperator(ctx context.Context, operator domain.Operator) error

	// UpdateOperator updates an existing operator's details.
	UpdateOperator(ctx context.Context, operator domain.Operator) error

	// DeactivateOperator marks an operator as inactive.
	DeactivateOperator(ctx context.Context, operatorID string, userID string, now time.Time) error
}
