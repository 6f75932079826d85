package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	"github.com/bodegapos/bodega-backend/internal/models"
	"github.com/bodegapos/bodega-backend/internal/utils/mapping"
	"github.com/bodegapos/bodega-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `customer_id, name, phone, dni, email, address, notes, outstanding_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(s rowScanner) (models.Customer, error) {
	var m models.Customer
	err := s.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.DNI,
		&m.Email,
		&m.Address,
		&m.Notes,
		&m.OutstandingBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Phone,
		m.DNI,
		m.Email,
		m.Address,
		m.Notes,
		m.OutstandingBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: customer with ID %s already exists", apperrors.ErrDuplicate, m.CustomerID)
		}
		return wrapStorageErr(err, "failed to save customer "+m.CustomerID)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find customer by ID "+customerID)
	}

	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

// ListCustomers retrieves a token-paginated list of customers, newest first.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Customer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + customerColumns + ` FROM customers`
	filterClause := `WHERE TRUE`
	if !includeInactive {
		filterClause = `WHERE is_active = TRUE`
	}
	orderByClause := `ORDER BY created_at DESC, customer_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause := `AND (created_at, customer_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, wrapStorageErr(err, "failed to query customers")
	}
	defer rows.Close()

	modelCustomers := make([]models.Customer, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanCustomer(rows)
		if scanErr != nil {
			return nil, nil, wrapStorageErr(scanErr, "failed to scan customer row")
		}
		modelCustomers = append(modelCustomers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapStorageErr(err, "error iterating customer rows")
	}

	var nextTokenVal *string
	results := modelCustomers
	if len(modelCustomers) > limit {
		last := modelCustomers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CustomerID)
		nextTokenVal = &token
		results = modelCustomers[:limit]
	}

	return mapping.ToDomainCustomerSlice(results), nextTokenVal, nil
}

// UpdateCustomer updates contact fields of an existing customer.
// outstanding_balance is deliberately not in the SET list; it only moves
// together with ledger entries.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		UPDATE customers
		SET name = $2, phone = $3, dni = $4, email = $5, address = $6, notes = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE customer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Phone,
		m.DNI,
		m.Email,
		m.Address,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapStorageErr(err, "failed to update customer "+m.CustomerID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCustomer marks a customer as inactive. Customers are never
// hard-deleted; sales and ledger entries keep referencing them.
func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE customer_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, customerID, now, userID)
	if err != nil {
		return wrapStorageErr(err, "failed to deactivate customer "+customerID)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindCustomerByID(ctx, customerID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check customer status after deactivation attempt for %s: %w", customerID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}
