package services

import (
	"context"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/dto"
)

// SaleReaderSvc defines read operations for sales
type SaleReaderSvc interface {
	// GetSaleByID retrieves a sale with its line items.
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves a paginated list of sales, most recent first.
	ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}

// SaleWriterSvc defines write operations for sales
type SaleWriterSvc interface {
	// RegisterSale records a sale atomically: stock is decremented for every
	// line and, for a credit sale, the ledger entry and the customer's cached
	// balance move in the same transaction. Either everything commits or
	// nothing does.
	RegisterSale(ctx context.Context, req dto.RegisterSaleRequest, userID string) (*domain.Sale, error)
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
