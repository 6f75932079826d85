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

const supplierColumns = `supplier_id, name, ruc, contact_name, phone, email, address, lead_time_days, notes, is_active, created_at, created_by, last_updated_at, last_updated_by`

const purchaseColumns = `purchase_id, supplier_id, product_id, quantity, unit_cost, total, status, ordered_at, received_at, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxSupplierRepository struct {
	BaseRepository
	productRepo portsrepo.ProductRepositoryFacade
}

// newPgxSupplierRepository creates a new repository for supplier and purchase
// data. The product repository is injected so receiving a purchase can apply
// the stock delta inside the same transaction.
func newPgxSupplierRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductRepositoryFacade) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
	}
}

// Ensure PgxSupplierRepository implements portsrepo.SupplierRepositoryFacade
var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

func scanSupplier(s rowScanner) (models.Supplier, error) {
	var m models.Supplier
	err := s.Scan(
		&m.SupplierID,
		&m.Name,
		&m.RUC,
		&m.ContactName,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.LeadTimeDays,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPurchase(s rowScanner) (models.SupplierPurchase, error) {
	var m models.SupplierPurchase
	err := s.Scan(
		&m.PurchaseID,
		&m.SupplierID,
		&m.ProductID,
		&m.Quantity,
		&m.UnitCost,
		&m.Total,
		&m.Status,
		&m.OrderedAt,
		&m.ReceivedAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSupplier inserts a new supplier.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)

	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SupplierID,
		m.Name,
		m.RUC,
		m.ContactName,
		m.Phone,
		m.Email,
		m.Address,
		m.LeadTimeDays,
		m.Notes,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: supplier with ID %s already exists", apperrors.ErrDuplicate, m.SupplierID)
		}
		return wrapStorageErr(err, "failed to save supplier "+m.SupplierID)
	}
	return nil
}

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`

	m, err := scanSupplier(r.Pool.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find supplier by ID "+supplierID)
	}

	d := mapping.ToDomainSupplier(m)
	return &d, nil
}

// ListSuppliers retrieves a token-paginated list of suppliers, newest first.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Supplier, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + supplierColumns + ` FROM suppliers`
	filterClause := `WHERE TRUE`
	if !includeInactive {
		filterClause = `WHERE is_active = TRUE`
	}
	orderByClause := `ORDER BY created_at DESC, supplier_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause := `AND (created_at, supplier_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, wrapStorageErr(err, "failed to query suppliers")
	}
	defer rows.Close()

	modelSuppliers := make([]models.Supplier, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanSupplier(rows)
		if scanErr != nil {
			return nil, nil, wrapStorageErr(scanErr, "failed to scan supplier row")
		}
		modelSuppliers = append(modelSuppliers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapStorageErr(err, "error iterating supplier rows")
	}

	var nextTokenVal *string
	results := modelSuppliers
	if len(modelSuppliers) > limit {
		last := modelSuppliers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SupplierID)
		nextTokenVal = &token
		results = modelSuppliers[:limit]
	}

	return mapping.ToDomainSupplierSlice(results), nextTokenVal, nil
}

// UpdateSupplier updates an existing supplier's details.
func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)

	query := `
		UPDATE suppliers
		SET name = $2, ruc = $3, contact_name = $4, phone = $5, email = $6, address = $7,
		    lead_time_days = $8, notes = $9, last_updated_at = $10, last_updated_by = $11
		WHERE supplier_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SupplierID,
		m.Name,
		m.RUC,
		m.ContactName,
		m.Phone,
		m.Email,
		m.Address,
		m.LeadTimeDays,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapStorageErr(err, "failed to update supplier "+m.SupplierID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateSupplier marks a supplier as inactive.
func (r *PgxSupplierRepository) DeactivateSupplier(ctx context.Context, supplierID string, userID string, now time.Time) error {
	query := `
		UPDATE suppliers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE supplier_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, supplierID, now, userID)
	if err != nil {
		return wrapStorageErr(err, "failed to deactivate supplier "+supplierID)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindSupplierByID(ctx, supplierID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check supplier status after deactivation attempt for %s: %w", supplierID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}

// SavePurchase persists a new purchase order.
func (r *PgxSupplierRepository) SavePurchase(ctx context.Context, purchase domain.SupplierPurchase) error {
	m := mapping.ToModelSupplierPurchase(purchase)

	query := `
		INSERT INTO supplier_purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PurchaseID,
		m.SupplierID,
		m.ProductID,
		m.Quantity,
		m.UnitCost,
		m.Total,
		m.Status,
		m.OrderedAt,
		m.ReceivedAt,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase with ID %s already exists", apperrors.ErrDuplicate, m.PurchaseID)
		}
		return wrapStorageErr(err, "failed to save purchase "+m.PurchaseID)
	}
	return nil
}

// FindPurchaseByID retrieves a purchase order by its ID.
func (r *PgxSupplierRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.SupplierPurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM supplier_purchases WHERE purchase_id = $1;`

	m, err := scanPurchase(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find purchase by ID "+purchaseID)
	}

	d := mapping.ToDomainSupplierPurchase(m)
	return &d, nil
}

// ListPurchasesBySupplier retrieves purchase orders for one supplier, newest first.
func (r *PgxSupplierRepository) ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.SupplierPurchase, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + purchaseColumns + ` FROM supplier_purchases`
	filterClause := `WHERE supplier_id = $1`
	orderByClause := `ORDER BY ordered_at DESC, purchase_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{supplierID}

	if nextToken != nil && *nextToken != "" {
		lastOrderedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause := `AND (ordered_at, purchase_id) < ($2, $3)`
		args = append(args, lastOrderedAt, lastID)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $2;"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, wrapStorageErr(err, "failed to query purchases for supplier "+supplierID)
	}
	defer rows.Close()

	modelPurchases := make([]models.SupplierPurchase, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPurchase(rows)
		if scanErr != nil {
			return nil, nil, wrapStorageErr(scanErr, "failed to scan purchase row for supplier "+supplierID)
		}
		modelPurchases = append(modelPurchases, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapStorageErr(err, "error iterating purchase rows for supplier "+supplierID)
	}

	var nextTokenVal *string
	results := modelPurchases
	if len(modelPurchases) > limit {
		last := modelPurchases[limit-1]
		token := pagination.EncodeToken(last.OrderedAt, last.PurchaseID)
		nextTokenVal = &token
		results = modelPurchases[:limit]
	}

	return mapping.ToDomainSupplierPurchaseSlice(results), nextTokenVal, nil
}

// ReceivePurchase marks an ORDERED purchase as RECEIVED and applies its
// quantity as a positive stock adjustment on the product in the same
// transaction, so inventory and purchase state move together.
func (r *PgxSupplierRepository) ReceivePurchase(ctx context.Context, purchaseID string, userID string, now time.Time) (*domain.SupplierPurchase, *domain.Product, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + purchaseColumns + ` FROM supplier_purchases WHERE purchase_id = $1 FOR UPDATE;`
	m, err := scanPurchase(tx.QueryRow(ctx, lockQuery, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, wrapStorageErr(err, "failed to lock purchase "+purchaseID)
	}
	if m.Status != string(domain.PurchaseOrdered) {
		return nil, nil, fmt.Errorf("%w: purchase %s is %s, only ORDERED purchases can be received",
			apperrors.ErrValidation, purchaseID, m.Status)
	}

	lockedProducts, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, []string{m.ProductID})
	if err != nil {
		return nil, nil, err
	}
	if err := r.productRepo.AdjustStockInTx(ctx, tx, m.ProductID, m.Quantity, userID, now); err != nil {
		return nil, nil, err
	}

	updateQuery := `
		UPDATE supplier_purchases
		SET status = $2, received_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, purchaseID, string(domain.PurchaseReceived), now, userID); err != nil {
		return nil, nil, wrapStorageErr(err, "failed to mark purchase "+purchaseID+" received")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	m.Status = string(domain.PurchaseReceived)
	m.ReceivedAt = &now
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	purchase := mapping.ToDomainSupplierPurchase(m)

	product := lockedProducts[m.ProductID]
	product.Stock += m.Quantity
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID

	return &purchase, &product, nil
}

// CancelPurchase marks an ORDERED purchase as CANCELLED. Stock is untouched.
func (r *PgxSupplierRepository) CancelPurchase(ctx context.Context, purchaseID string, userID string, now time.Time) error {
	query := `
		UPDATE supplier_purchases
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_id = $1 AND status = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, purchaseID,
		string(domain.PurchaseCancelled), now, userID, string(domain.PurchaseOrdered))
	if err != nil {
		return wrapStorageErr(err, "failed to cancel purchase "+purchaseID)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindPurchaseByID(ctx, purchaseID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check purchase status after cancellation attempt for %s: %w", purchaseID, findErr)
		}
		// Exists but is not ORDERED anymore.
		return apperrors.ErrValidation
	}
	return nil
}
