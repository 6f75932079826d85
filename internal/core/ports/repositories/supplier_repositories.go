package repositories

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
)

// SupplierReader defines read operations for supplier data
type SupplierReader interface {
	// FindSupplierByID retrieves a specific supplier.
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves a token-paginated list of suppliers.
	ListSuppliers(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Supplier, *string, error)
}

// SupplierWriter defines write operations for supplier data
type SupplierWriter interface {
	// SaveSupplier persists a new supplier.
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error

	// UpdateSupplier updates an existing supplier's details.
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error

	// DeactivateSupplier marks a supplier as inactive.
	DeactivateSupplier(ctx context.Context, supplierID string, userID string, now time.Time) error
}

// PurchaseRepository defines operations for supplier purchases (restocking).
type PurchaseRepository interface {
	// SavePurchase persists a new purchase in ORDERED state.
	SavePurchase(ctx context.Context, purchase domain.SupplierPurchase) error

	// FindPurchaseByID retrieves a specific purchase.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.SupplierPurchase, error)

	// ListPurchasesBySupplier retrieves purchases for one supplier, newest
	// first.
	ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.SupplierPurchase, *string, error)

	// ReceivePurchase marks an ORDERED purchase as RECEIVED and applies its
	// quantity as a positive stock adjustment on the product, both within one
	// transaction. Returns the updated purchase and product.
	ReceivePurchase(ctx context.Context, purchaseID string, userID string, now time.Time) (*domain.SupplierPurchase, *domain.Product, error)

	// CancelPurchase marks an ORDERED purchase as CANCELLED. Received
	// purchases cannot be cancelled.
	CancelPurchase(ctx context.Context, purchaseID string, userID string, now time.Time) error
}

// SupplierRepositoryFacade combines all supplier-related repository interfaces
type SupplierRepositoryFacade interface {
	SupplierReader
	SupplierWriter
	PurchaseRepository
}
