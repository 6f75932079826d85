package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	"github.com/bodegapos/bodega-backend/internal/models"
	"github.com/bodegapos/bodega-backend/internal/utils/mapping"
	"github.com/bodegapos/bodega-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const saleColumns = `sale_id, kind, customer_id, total, idempotency_key, created_at, created_by, last_updated_at, last_updated_by`

type PgxSaleRepository struct {
	BaseRepository
	productRepo portsrepo.ProductRepositoryFacade
}

// newPgxSaleRepository creates a new repository for sale data. The product
// repository is injected for row locking and stock adjustment inside the
// registration transaction.
func newPgxSaleRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductRepositoryFacade) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
	}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func scanSale(s rowScanner) (models.Sale, error) {
	var m models.Sale
	err := s.Scan(
		&m.SaleID,
		&m.Kind,
		&m.CustomerID,
		&m.Total,
		&m.IdempotencyKey,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateSale registers a sale as one database transaction. The sequence is:
// lock every product row in sorted-id order, verify stock, snapshot unit
// prices, decrement stock, insert the sale header and its items, and for a
// credit sale lock the customer row, append the CREDIT ledger entry and
// increment the outstanding balance. The customer lock is always taken after
// the product locks so concurrent registrations cannot deadlock. Either every
// effect commits or none do.
func (r *PgxSaleRepository) CreateSale(ctx context.Context, input portsrepo.NewSaleInput) (*domain.Sale, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Aggregate requested quantities per product; a sale may repeat a
	// product across lines and the stock check must see the sum.
	needed := make(map[string]int64)
	for _, line := range input.Lines {
		needed[line.ProductID] += line.Quantity
	}
	productIDs := make([]string, 0, len(needed))
	for id := range needed {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	lockedProducts, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range productIDs {
		product := lockedProducts[id]
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, id)
		}
		if product.Stock < needed[id] {
			return nil, &apperrors.InsufficientStockError{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Requested:   needed[id],
				Available:   product.Stock,
			}
		}
	}

	for _, id := range productIDs {
		if err := r.productRepo.AdjustStockInTx(ctx, tx, id, -needed[id], input.UserID, input.Now); err != nil {
			return nil, err
		}
	}

	// Build line items with prices snapshotted from the locked rows.
	items := make([]domain.SaleItem, len(input.Lines))
	total := decimal.Zero
	for i, line := range input.Lines {
		product := lockedProducts[line.ProductID]
		items[i] = domain.SaleItem{
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			Quantity:        line.Quantity,
			UnitPriceAtSale: product.SalePrice,
		}
		total = total.Add(items[i].Subtotal())
	}

	sale := domain.Sale{
		SaleID:         input.SaleID,
		Kind:           input.Kind,
		CustomerID:     input.CustomerID,
		Items:          items,
		Total:          total,
		IdempotencyKey: input.IdempotencyKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     input.Now,
			CreatedBy:     input.UserID,
			LastUpdatedAt: input.Now,
			LastUpdatedBy: input.UserID,
		},
	}

	modelSale := mapping.ToModelSale(sale)
	saleQuery := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, saleQuery,
		modelSale.SaleID,
		modelSale.Kind,
		modelSale.CustomerID,
		modelSale.Total,
		modelSale.IdempotencyKey,
		modelSale.CreatedAt,
		modelSale.CreatedBy,
		modelSale.LastUpdatedAt,
		modelSale.LastUpdatedBy,
	); err != nil {
		if isUniqueViolation(err) {
			// Idempotency key collision: the sale was already registered.
			return nil, fmt.Errorf("%w: sale with this idempotency key already recorded", apperrors.ErrDuplicate)
		}
		return nil, wrapStorageErr(err, "failed to insert sale "+modelSale.SaleID)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO sale_items (sale_id, line_no, product_id, product_name, quantity, unit_price_at_sale)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range mapping.ToModelSaleItems(sale.SaleID, items) {
		batch.Queue(itemQuery,
			item.SaleID,
			item.LineNo,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPriceAtSale,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, wrapStorageErr(err, "failed to insert sale items for sale "+sale.SaleID)
	}

	if input.Kind == domain.SaleCredit {
		customer, err := lockCustomerForUpdate(ctx, tx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if !customer.IsActive {
			return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, *input.CustomerID)
		}

		entry := domain.LedgerEntry{
			EntryID:     input.EntryID,
			CustomerID:  *input.CustomerID,
			Kind:        domain.KindCredit,
			Amount:      total,
			Description: input.EntryDescription,
			SaleID:      &sale.SaleID,
			AuditFields: sale.AuditFields,
		}
		if err := insertLedgerEntryInTx(ctx, tx, entry); err != nil {
			return nil, err
		}

		newBalance := customer.OutstandingBalance.Add(total)
		if err := setCustomerBalanceInTx(ctx, tx, *input.CustomerID, newBalance, input.UserID, input.Now); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &sale, nil
}

// FindSaleByID retrieves a sale with its line items.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`

	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find sale by ID "+saleID)
	}

	itemsMap, err := r.findItemsBySaleIDs(ctx, []string{m.SaleID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainSale(m, itemsMap[m.SaleID])
	return &d, nil
}

// FindSaleByIdempotencyKey retrieves the sale previously registered under the
// given key.
func (r *PgxSaleRepository) FindSaleByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE idempotency_key = $1;`

	m, err := scanSale(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find sale by idempotency key")
	}

	itemsMap, err := r.findItemsBySaleIDs(ctx, []string{m.SaleID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainSale(m, itemsMap[m.SaleID])
	return &d, nil
}

// ListSales retrieves a token-paginated list of sales, newest first, with
// items attached.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + saleColumns + ` FROM sales`
	orderByClause := `ORDER BY created_at DESC, sale_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause := `WHERE (created_at, sale_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, wrapStorageErr(err, "failed to query sales")
	}
	defer rows.Close()

	modelSales := make([]models.Sale, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanSale(rows)
		if scanErr != nil {
			return nil, nil, wrapStorageErr(scanErr, "failed to scan sale row")
		}
		modelSales = append(modelSales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapStorageErr(err, "error iterating sale rows")
	}

	var nextTokenVal *string
	results := modelSales
	if len(modelSales) > limit {
		last := modelSales[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SaleID)
		nextTokenVal = &token
		results = modelSales[:limit]
	}

	saleIDs := make([]string, len(results))
	for i, m := range results {
		saleIDs[i] = m.SaleID
	}
	itemsMap, err := r.findItemsBySaleIDs(ctx, saleIDs)
	if err != nil {
		return nil, nil, err
	}

	sales := make([]domain.Sale, len(results))
	for i, m := range results {
		sales[i] = mapping.ToDomainSale(m, itemsMap[m.SaleID])
	}
	return sales, nextTokenVal, nil
}

// findItemsBySaleIDs fetches line items for a set of sales, grouped by sale ID.
func (r *PgxSaleRepository) findItemsBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]models.SaleItem, error) {
	if len(saleIDs) == 0 {
		return map[string][]models.SaleItem{}, nil
	}

	query := `
		SELECT sale_id, line_no, product_id, product_name, quantity, unit_price_at_sale
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, wrapStorageErr(err, "failed to query sale items")
	}
	defer rows.Close()

	itemsMap := make(map[string][]models.SaleItem)
	for rows.Next() {
		var m models.SaleItem
		if err := rows.Scan(
			&m.SaleID,
			&m.LineNo,
			&m.ProductID,
			&m.ProductName,
			&m.Quantity,
			&m.UnitPriceAtSale,
		); err != nil {
			return nil, wrapStorageErr(err, "failed to scan sale item row")
		}
		itemsMap[m.SaleID] = append(itemsMap[m.SaleID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorageErr(err, "error iterating sale item rows")
	}

	return itemsMap, nil
}
