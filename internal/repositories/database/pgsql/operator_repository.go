package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	"github.com/bodegapos/bodega-backend/internal/models"
	"github.com/bodegapos/bodega-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const operatorColumns = `operator_id, name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxOperatorRepository struct {
	BaseRepository
}

// newPgxOperatorRepository creates a new repository for operator data.
func newPgxOperatorRepository(pool *pgxpool.Pool) portsrepo.OperatorRepositoryFacade {
	return &PgxOperatorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOperatorRepository implements portsrepo.OperatorRepositoryFacade
var _ portsrepo.OperatorRepositoryFacade = (*PgxOperatorRepository)(nil)

func scanOperator(s rowScanner) (models.Operator, error) {
	var m models.Operator
	err := s.Scan(
		&m.OperatorID,
		&m.Name,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOperator inserts a new operator.
func (r *PgxOperatorRepository) SaveOperator(ctx context.Context, operator domain.Operator) error {
	m := mapping.ToModelOperator(operator)

	query := `
		INSERT INTO operators (` + operatorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OperatorID,
		m.Name,
		m.Phone,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: operator with ID %s already exists", apperrors.ErrDuplicate, m.OperatorID)
		}
		return wrapStorageErr(err, "failed to save operator "+m.OperatorID)
	}
	return nil
}

// FindOperatorByID retrieves an operator by its ID.
func (r *PgxOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE operator_id = $1;`

	m, err := scanOperator(r.Pool.QueryRow(ctx, query, operatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find operator by ID "+operatorID)
	}

	d := mapping.ToDomainOperator(m)
	return &d, nil
}

// ListOperators retrieves all operators, active first then by name. The team
// behind a single shop counter is small, so no pagination here.
func (r *PgxOperatorRepository) ListOperators(ctx context.Context, includeInactive bool) ([]domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY is_active DESC, name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, wrapStorageErr(err, "failed to query operators")
	}
	defer rows.Close()

	operators := []models.Operator{}
	for rows.Next() {
		m, scanErr := scanOperator(rows)
		if scanErr != nil {
			return nil, wrapStorageErr(scanErr, "failed to scan operator row")
		}
		operators = append(operators, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorageErr(err, "error iterating operator rows")
	}

	return mapping.ToDomainOperatorSlice(operators), nil
}

// UpdateOperator updates an existing operator's details.
func (r *PgxOperatorRepository) UpdateOperator(ctx context.Context, operator domain.Operator) error {
	m := mapping.ToModelOperator(operator)

	query := `
		UPDATE operators
		SET name = $2, phone = $3, last_updated_at = $4, last_updated_by = $5
		WHERE operator_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.OperatorID,
		m.Name,
		m.Phone,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapStorageErr(err, "failed to update operator "+m.OperatorID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateOperator marks an operator as inactive. Operators are never
// deleted so audit fields keep resolving.
func (r *PgxOperatorRepository) DeactivateOperator(ctx context.Context, operatorID string, userID string, now time.Time) error {
	query := `
		UPDATE operators
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE operator_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, operatorID, now, userID)
	if err != nil {
		return wrapStorageErr(err, "failed to deactivate operator "+operatorID)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindOperatorByID(ctx, operatorID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check operator status after deactivation attempt for %s: %w", operatorID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}
