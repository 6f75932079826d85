package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	"github.com/bodegapos/bodega-backend/internal/models"
	"github.com/bodegapos/bodega-backend/internal/utils/mapping"
	"github.com/bodegapos/bodega-backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `product_id, name, code, stock, cost_price, sale_price, category, supplier_id, expiration_date, low_stock_threshold, critical_stock_threshold, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (models.Product, error) {
	var m models.Product
	err := s.Scan(
		&m.ProductID,
		&m.Name,
		&m.Code,
		&m.Stock,
		&m.CostPrice,
		&m.SalePrice,
		&m.Category,
		&m.SupplierID,
		&m.ExpirationDate,
		&m.LowStockThreshold,
		&m.CriticalStockThreshold,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Code,
		m.Stock,
		m.CostPrice,
		m.SalePrice,
		m.Category,
		m.SupplierID,
		m.ExpirationDate,
		m.LowStockThreshold,
		m.CriticalStockThreshold,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return wrapStorageErr(err, "failed to save product "+m.ProductID)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find product by ID "+productID)
	}

	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProductByCode retrieves a product by its unique lookup code.
func (r *PgxProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find product by code "+code)
	}

	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// ListProducts retrieves a token-paginated list of products, newest first.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Product, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + productColumns + ` FROM products`
	filterClause := `WHERE TRUE`
	if !includeInactive {
		filterClause = `WHERE is_active = TRUE`
	}
	orderByClause := `ORDER BY created_at DESC, product_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause := `AND (created_at, product_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, wrapStorageErr(err, "failed to query products")
	}
	defer rows.Close()

	modelProducts := make([]models.Product, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, nil, wrapStorageErr(scanErr, "failed to scan product row")
		}
		modelProducts = append(modelProducts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapStorageErr(err, "error iterating product rows")
	}

	var nextTokenVal *string
	results := modelProducts
	if len(modelProducts) > limit {
		last := modelProducts[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ProductID)
		nextTokenVal = &token
		results = modelProducts[:limit]
	}

	return mapping.ToDomainProductSlice(results), nextTokenVal, nil
}

// UpdateProduct merges a partial update onto the current row under a row
// lock. The price diff is computed against the locked row, never against a
// stale read, so every price history record chains from the price that was
// actually stored when the update committed.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, productID string, changes domain.ProductChanges, userID string, now time.Time) (*domain.Product, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE;`
	current, err := scanProduct(tx.QueryRow(ctx, lockQuery, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to lock product "+productID)
	}

	existing := mapping.ToDomainProduct(current)
	updated := existing
	changes.Apply(&updated)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if updated.CriticalStockThreshold > updated.LowStockThreshold {
		return nil, fmt.Errorf("%w: critical stock threshold %d must not exceed low stock threshold %d",
			apperrors.ErrValidation, updated.CriticalStockThreshold, updated.LowStockThreshold)
	}

	m := mapping.ToModelProduct(updated)
	query := `
		UPDATE products
		SET name = $2, code = $3, cost_price = $4, sale_price = $5, category = $6,
		    supplier_id = $7, expiration_date = $8, low_stock_threshold = $9,
		    critical_stock_threshold = $10, last_updated_at = $11, last_updated_by = $12
		WHERE product_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Code,
		m.CostPrice,
		m.SalePrice,
		m.Category,
		m.SupplierID,
		m.ExpirationDate,
		m.LowStockThreshold,
		m.CriticalStockThreshold,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: product code %s already in use", apperrors.ErrDuplicate, m.Code)
		}
		return nil, wrapStorageErr(err, "failed to update product "+m.ProductID)
	}

	// Compare by value: 10.0 and 10.00 are the same price.
	priceChanged := !updated.CostPrice.Equal(existing.CostPrice) || !updated.SalePrice.Equal(existing.SalePrice)
	if priceChanged {
		record := domain.PriceChangeRecord{
			RecordID:          uuid.NewString(),
			ProductID:         productID,
			PreviousCost:      existing.CostPrice,
			PreviousSalePrice: existing.SalePrice,
			NewCost:           updated.CostPrice,
			NewSalePrice:      updated.SalePrice,
			Reason:            changes.PriceChangeReason,
			CreatedAt:         now,
			CreatedBy:         userID,
		}
		if err := insertPriceChange(ctx, tx, record); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &updated, nil
}

func insertPriceChange(ctx context.Context, tx pgx.Tx, record domain.PriceChangeRecord) error {
	m := mapping.ToModelPriceChangeRecord(record)
	query := `
		INSERT INTO price_history (record_id, product_id, previous_cost, previous_sale_price, new_cost, new_sale_price, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.RecordID,
		m.ProductID,
		m.PreviousCost,
		m.PreviousSalePrice,
		m.NewCost,
		m.NewSalePrice,
		m.Reason,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return wrapStorageErr(err, "failed to insert price history record for product "+m.ProductID)
	}
	return nil
}

// ListPriceHistory retrieves all price change records for a product, newest first.
func (r *PgxProductRepository) ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceChangeRecord, error) {
	query := `
		SELECT record_id, product_id, previous_cost, previous_sale_price, new_cost, new_sale_price, reason, created_at, created_by
		FROM price_history
		WHERE product_id = $1
		ORDER BY created_at DESC, record_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, wrapStorageErr(err, "failed to query price history for product "+productID)
	}
	defer rows.Close()

	records := []models.PriceChangeRecord{}
	for rows.Next() {
		var m models.PriceChangeRecord
		if err := rows.Scan(
			&m.RecordID,
			&m.ProductID,
			&m.PreviousCost,
			&m.PreviousSalePrice,
			&m.NewCost,
			&m.NewSalePrice,
			&m.Reason,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, wrapStorageErr(err, "failed to scan price history row for product "+productID)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorageErr(err, "error iterating price history rows for product "+productID)
	}

	return mapping.ToDomainPriceChangeRecordSlice(records), nil
}

// AdjustStock applies a stock delta under a row lock. A delta that would
// drive stock negative fails with InsufficientStockError; nothing is clamped.
func (r *PgxProductRepository) AdjustStock(ctx context.Context, productID string, delta int64, userID string, now time.Time) (*domain.Product, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE;`
	m, err := scanProduct(tx.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to lock product "+productID)
	}

	newStock := m.Stock + delta
	if newStock < 0 {
		return nil, &apperrors.InsufficientStockError{
			ProductID:   m.ProductID,
			ProductName: m.Name,
			Requested:   -delta,
			Available:   m.Stock,
		}
	}

	updateQuery := `
		UPDATE products
		SET stock = $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, productID, newStock, now, userID); err != nil {
		return nil, wrapStorageErr(err, "failed to update stock for product "+productID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Stock = newStock
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// DeactivateProduct marks a product as inactive.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, productID, now, userID)
	if err != nil {
		return wrapStorageErr(err, "failed to deactivate product "+productID)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the product does not exist or it was already inactive.
		_, findErr := r.FindProductByID(ctx, productID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check product status after deactivation attempt for %s: %w", productID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}

// FindProductsByIDsForUpdate retrieves multiple products by IDs and locks the
// rows for update. IDs are locked in sorted order so concurrent callers
// acquire locks in the same sequence and cannot deadlock each other.
// Must be called within a transaction.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	sorted := make([]string, len(productIDs))
	copy(sorted, productIDs)
	sort.Strings(sorted)

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = ANY($1)
		ORDER BY product_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, wrapStorageErr(err, "failed to query products by IDs for update")
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		m, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, wrapStorageErr(scanErr, "failed to scan locked product row")
		}
		productsMap[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorageErr(err, "error iterating locked product rows")
	}

	if len(productsMap) != len(dedupe(sorted)) {
		missing := []string{}
		for _, id := range sorted {
			if _, found := productsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some products requested for update lock were not found", "missing_products", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested products, missing: %v", apperrors.ErrNotFound, missing)
	}

	return productsMap, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}

// AdjustStockInTx applies a stock delta within an externally managed
// transaction. The caller must already hold the row lock and have validated
// the resulting stock level.
func (r *PgxProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int64, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, productID, delta, now, userID)
	if err != nil {
		return wrapStorageErr(err, "failed to adjust stock for product "+productID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s not found during stock adjustment", apperrors.ErrNotFound, productID)
	}
	return nil
}
