package services

import (
	"context"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/dto"
)

// ProductReaderSvc defines read operations for product data
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its unique identifier.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetProductByCode retrieves a product by its barcode / internal code.
	GetProductByCode(ctx context.Context, code string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products.
	ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error)

	// ListPriceHistory retrieves the recorded price changes for a product,
	// most recent first.
	ListPriceHistory(ctx context.Context, productID string, limit int) ([]domain.PriceChangeRecord, error)
}

// ProductWriterSvc defines write operations for product data
type ProductWriterSvc interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)

	// UpdateProduct updates an existing product's details. A sale price change
	// produces a price history record in the same transaction.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)

	// AdjustStock applies a manual stock delta (damage, correction, recount).
	AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error)

	// DeactivateProduct marks a product as inactive.
	DeactivateProduct(ctx context.Context, productID string, userID string) error
}

// ProductSvcFacade combines all product-related service interfaces
// This is a facade for clients that need access to all operations
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
