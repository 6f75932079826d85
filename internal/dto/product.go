package dto

import (
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	Name                   string          `json:"name" binding:"required"`
	Code                   string          `json:"code" binding:"required"`
	Stock                  int64           `json:"stock" binding:"gte=0"`
	CostPrice              decimal.Decimal `json:"costPrice" binding:"gte=0"`
	SalePrice              decimal.Decimal `json:"salePrice" binding:"gte=0"`
	Category               string          `json:"category"`
	SupplierID             *string         `json:"supplierID"`
	ExpirationDate         *time.Time      `json:"expirationDate"`
	LowStockThreshold      *int64          `json:"lowStockThreshold" binding:"omitempty,gt=0"`
	CriticalStockThreshold *int64          `json:"criticalStockThreshold" binding:"omitempty,gt=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Stock is deliberately absent; stock only moves through sales, purchases and
// explicit adjustments.
type UpdateProductRequest struct {
	Name                   *string          `json:"name"`
	Code                   *string          `json:"code"`
	CostPrice              *decimal.Decimal `json:"costPrice"`
	SalePrice              *decimal.Decimal `json:"salePrice"`
	Category               *string          `json:"category"`
	SupplierID             *string          `json:"supplierID"`
	ExpirationDate         *time.Time       `json:"expirationDate"`
	LowStockThreshold      *int64           `json:"lowStockThreshold" binding:"omitempty,gt=0"`
	CriticalStockThreshold *int64           `json:"criticalStockThreshold" binding:"omitempty,gt=0"`
	PriceChangeReason      *string          `json:"priceChangeReason"`
}

// AdjustStockRequest defines a manual stock correction.
type AdjustStockRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// ProductResponse defines the data returned for a product.
// Status is derived at response time; it is never stored.
type ProductResponse struct {
	ProductID              string               `json:"productID"`
	Name                   string               `json:"name"`
	Code                   string               `json:"code"`
	Stock                  int64                `json:"stock"`
	CostPrice              decimal.Decimal      `json:"costPrice"`
	SalePrice              decimal.Decimal      `json:"salePrice"`
	Category               string               `json:"category"`
	SupplierID             *string              `json:"supplierID"`
	ExpirationDate         *time.Time           `json:"expirationDate"`
	LowStockThreshold      int64                `json:"lowStockThreshold"`
	CriticalStockThreshold int64                `json:"criticalStockThreshold"`
	Status                 domain.ProductStatus `json:"status"`
	IsActive               bool                 `json:"isActive"`
	CreatedAt              time.Time            `json:"createdAt"`
	CreatedBy              string               `json:"createdBy"`
	LastUpdatedAt          time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy          string               `json:"lastUpdatedBy"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:              p.ProductID,
		Name:                   p.Name,
		Code:                   p.Code,
		Stock:                  p.Stock,
		CostPrice:              p.CostPrice,
		SalePrice:              p.SalePrice,
		Category:               p.Category,
		SupplierID:             p.SupplierID,
		ExpirationDate:         p.ExpirationDate,
		LowStockThreshold:      p.LowStockThreshold,
		CriticalStockThreshold: p.CriticalStockThreshold,
		Status:                 p.Status(),
		IsActive:               p.IsActive,
		CreatedAt:              p.CreatedAt,
		CreatedBy:              p.CreatedBy,
		LastUpdatedAt:          p.LastUpdatedAt,
		LastUpdatedBy:          p.LastUpdatedBy,
	}
}

// ToListProductResponse converts a slice of domain.Product to response DTOs.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p)
	}
	return res
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit           int     `form:"limit,default=20"`
	NextToken       *string `form:"nextToken"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
}

// ListProductsResponse wraps a page of products plus the token for the next page.
type ListProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// PriceChangeResponse defines the data returned for one price history record.
type PriceChangeResponse struct {
	RecordID          string          `json:"recordID"`
	ProductID         string          `json:"productID"`
	PreviousCost      decimal.Decimal `json:"previousCost"`
	PreviousSalePrice decimal.Decimal `json:"previousSalePrice"`
	NewCost           decimal.Decimal `json:"newCost"`
	NewSalePrice      decimal.Decimal `json:"newSalePrice"`
	Reason            string          `json:"reason"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// ToPriceChangeResponses converts domain price records to response DTOs.
func ToPriceChangeResponses(records []domain.PriceChangeRecord) []PriceChangeResponse {
	res := make([]PriceChangeResponse, len(records))
	for i, r := range records {
		res[i] = PriceChangeResponse{
			RecordID:          r.RecordID,
			ProductID:         r.ProductID,
			PreviousCost:      r.PreviousCost,
			PreviousSalePrice: r.PreviousSalePrice,
			NewCost:           r.NewCost,
			NewSalePrice:      r.NewSalePrice,
			Reason:            r.Reason,
			CreatedAt:         r.CreatedAt,
			CreatedBy:         r.CreatedBy,
		}
	}
	return res
}
