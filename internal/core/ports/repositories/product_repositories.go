package repositories

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a specific product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByCode retrieves a product by its unique lookup code (barcode).
	FindProductByCode(ctx context.Context, code string) (*domain.Product, error)

	// ListProducts retrieves a token-paginated list of products.
	ListProducts(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Product, *string, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct merges a partial update onto the current row under a
	// SELECT FOR UPDATE lock. When the merged prices differ from the stored
	// ones, exactly one price history record is inserted in the same
	// transaction, so concurrent updates serialize on the row and the history
	// always chains from the price that was actually stored.
	UpdateProduct(ctx context.Context, productID string, changes domain.ProductChanges, userID string, now time.Time) (*domain.Product, error)

	// AdjustStock applies a bounded stock delta under a row lock. It is the
	// only sanctioned way to change stock and fails with
	// *apperrors.InsufficientStockError rather than clamping when the delta
	// would drive stock negative.
	AdjustStock(ctx context.Context, productID string, delta int64, userID string, now time.Time) (*domain.Product, error)

	// DeactivateProduct marks a product as inactive (soft retire).
	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// PriceHistoryReader defines read operations for the price change audit trail
type PriceHistoryReader interface {
	// ListPriceHistory retrieves all price change records for a product,
	// newest first.
	ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceChangeRecord, error)
}

// ProductTransactionSupport defines product operations usable inside an
// externally managed transaction.
type ProductTransactionSupport interface {
	// FindProductsByIDsForUpdate selects products and locks their rows for
	// update within a transaction. IDs are locked in sorted order to keep
	// concurrent callers deadlock-free.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// AdjustStockInTx applies a stock delta within a given transaction. The
	// row must already be locked.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int64, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	PriceHistoryReader
	ProductTransactionSupport
}
