package repositories

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
)

// SaleLine is one validated line of a sale about to be registered. Prices are
// not part of the input; they are snapshotted from the product rows under
// lock inside the registration transaction.
type SaleLine struct {
	ProductID string
	Quantity  int64
}

// NewSaleInput carries everything the repository needs to register a sale
// atomically.
type NewSaleInput struct {
	SaleID           string
	Kind             domain.SaleKind
	CustomerID       *string // Required iff Kind == SaleCredit
	Lines            []SaleLine
	EntryID          string // Pre-allocated ID for the credit ledger entry
	EntryDescription string // Description for the credit ledger entry
	IdempotencyKey   *string
	UserID           string
	Now              time.Time
}

// SaleReader defines read operations for sales
type SaleReader interface {
	// FindSaleByID retrieves a sale with its line items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindSaleByIdempotencyKey retrieves the sale previously registered under
	// the given key, or ErrNotFound.
	FindSaleByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error)

	// ListSales retrieves a token-paginated list of sales, newest first.
	ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines the sale registration transition.
type SaleWriter interface {
	// CreateSale executes the whole registration as one database
	// transaction: locks the product rows in sorted-id order, verifies and
	// decrements stock, snapshots unit prices, inserts the sale and its
	// items, and for credit sales locks the customer row, appends the CREDIT
	// ledger entry and increments the outstanding balance. Either every
	// effect commits or none do; partial states are unobservable.
	//
	// Failure modes: *apperrors.InsufficientStockError (any line short),
	// apperrors.ErrNotFound (unknown product or customer),
	// apperrors.ErrValidation (inactive product or customer),
	// apperrors.ErrDuplicate (idempotency key already used).
	CreateSale(ctx context.Context, input NewSaleInput) (*domain.Sale, error)
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
