package dto

import (
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one requested line of a sale. The unit price is looked
// up server-side; clients never send prices.
type SaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// RegisterSaleRequest defines the data needed to register a sale.
// CustomerID is required for CREDIT sales and must be absent for CASH sales.
// IdempotencyKey lets a client retry a timed-out request without double-charging.
type RegisterSaleRequest struct {
	Kind           string            `json:"kind" binding:"required,oneof=CASH CREDIT"`
	CustomerID     *string           `json:"customerID"`
	Items          []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	IdempotencyKey *string           `json:"idempotencyKey"`
}

// SaleItemResponse defines the data returned for one sale line.
type SaleItemResponse struct {
	ProductID       string          `json:"productID"`
	ProductName     string          `json:"productName"`
	Quantity        int64           `json:"quantity"`
	UnitPriceAtSale decimal.Decimal `json:"unitPriceAtSale"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID     string             `json:"saleID"`
	Kind       string             `json:"kind"`
	CustomerID *string            `json:"customerID"`
	Items      []SaleItemResponse `json:"items"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  time.Time          `json:"createdAt"`
	CreatedBy  string             `json:"createdBy"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			UnitPriceAtSale: it.UnitPriceAtSale,
			Subtotal:        it.Subtotal(),
		}
	}
	return SaleResponse{
		SaleID:     s.SaleID,
		Kind:       string(s.Kind),
		CustomerID: s.CustomerID,
		Items:      items,
		Total:      s.Total,
		CreatedAt:  s.CreatedAt,
		CreatedBy:  s.CreatedBy,
	}
}

// ToListSaleResponse converts a slice of domain.Sale to response DTOs.
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i, s := range sales {
		res[i] = ToSaleResponse(&s)
	}
	return res
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListSalesResponse wraps a page of sales plus the next page token.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}
