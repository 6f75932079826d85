package dto

import (
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest defines the data needed to create a new supplier.
type CreateSupplierRequest struct {
	Name         string  `json:"name" binding:"required"`
	RUC          *string `json:"ruc"`
	ContactName  *string `json:"contactName"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Address      *string `json:"address"`
	LeadTimeDays int     `json:"leadTimeDays" binding:"gte=0"`
	Notes        *string `json:"notes"`
}

// UpdateSupplierRequest defines the data allowed for updating a supplier.
type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	RUC          *string `json:"ruc"`
	ContactName  *string `json:"contactName"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Address      *string `json:"address"`
	LeadTimeDays *int    `json:"leadTimeDays" binding:"omitempty,gte=0"`
	Notes        *string `json:"notes"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID    string    `json:"supplierID"`
	Name          string    `json:"name"`
	RUC           *string   `json:"ruc"`
	ContactName   *string   `json:"contactName"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	LeadTimeDays  int       `json:"leadTimeDays"`
	Notes         *string   `json:"notes"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToSupplierResponse converts a domain.Supplier to SupplierResponse DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:    s.SupplierID,
		Name:          s.Name,
		RUC:           s.RUC,
		ContactName:   s.ContactName,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		LeadTimeDays:  s.LeadTimeDays,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}

// ToListSupplierResponse converts a slice of domain.Supplier to response DTOs.
func ToListSupplierResponse(suppliers []domain.Supplier) []SupplierResponse {
	res := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		res[i] = ToSupplierResponse(&s)
	}
	return res
}

// CreatePurchaseRequest defines a restocking order placed with a supplier.
type CreatePurchaseRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unitCost" binding:"required,gt=0"`
	Notes     *string         `json:"notes"`
}

// PurchaseResponse defines the data returned for a purchase order.
type PurchaseResponse struct {
	PurchaseID string          `json:"purchaseID"`
	SupplierID string          `json:"supplierID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	OrderedAt  time.Time       `json:"orderedAt"`
	ReceivedAt *time.Time      `json:"receivedAt"`
	Notes      *string         `json:"notes"`
}

// ToPurchaseResponse converts a domain.SupplierPurchase to its response DTO.
func ToPurchaseResponse(p *domain.SupplierPurchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID: p.PurchaseID,
		SupplierID: p.SupplierID,
		ProductID:  p.ProductID,
		Quantity:   p.Quantity,
		UnitCost:   p.UnitCost,
		Total:      p.Total,
		Status:     string(p.Status),
		OrderedAt:  p.OrderedAt,
		ReceivedAt: p.ReceivedAt,
		Notes:      p.Notes,
	}
}

// ToListPurchaseResponse converts a slice of purchases to response DTOs.
func ToListPurchaseResponse(purchases []domain.SupplierPurchase) []PurchaseResponse {
	res := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		res[i] = ToPurchaseResponse(&p)
	}
	return res
}
