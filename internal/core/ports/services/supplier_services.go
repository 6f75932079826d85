package services

import (
	"context"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/dto"
)

// SupplierReaderSvc defines read operations for suppliers and purchases
type SupplierReaderSvc interface {
	// GetSupplierByID retrieves a specific supplier.
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves all suppliers, optionally including inactive ones.
	ListSuppliers(ctx context.Context, includeInactive bool) ([]domain.Supplier, error)

	// GetPurchaseByID retrieves a specific purchase order.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.SupplierPurchase, error)

	// ListPurchasesBySupplier retrieves purchase orders for a supplier, most
	// recent first.
	ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.SupplierPurchase, error)
}

// SupplierWriterSvc defines write operations for suppliers and purchases
type SupplierWriterSvc interface {
	// CreateSupplier persists a new supplier.
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, userID string) (*domain.Supplier, error)

	// UpdateSupplier updates supplier details.
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error)

	// DeactivateSupplier marks a supplier as inactive.
	DeactivateSupplier(ctx context.Context, supplierID string, userID string) error

	// CreatePurchase records a restocking order in ORDERED state.
	CreatePurchase(ctx context.Context, supplierID string, req dto.CreatePurchaseRequest, userID string) (*domain.SupplierPurchase, error)

	// ReceivePurchase marks an ORDERED purchase as RECEIVED and applies its
	// quantity to the product's stock in the same transaction.
	ReceivePurchase(ctx context.Context, purchaseID string, userID string) (*domain.SupplierPurchase, error)

	// CancelPurchase marks an ORDERED purchase as CANCELLED. Stock is untouched.
	CancelPurchase(ctx context.Context, purchaseID string, userID string) error
}

// SupplierSvcFacade combines all supplier-related service interfaces
type SupplierSvcFacade interface {
	SupplierReaderSvc
	SupplierWriterSvc
}
