package dto

import (
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a new credit customer.
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	DNI     *string `json:"dni"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// The outstanding balance is not here; it only moves with the ledger.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	DNI     *string `json:"dni"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID         string          `json:"customerID"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone"`
	DNI                *string         `json:"dni"`
	Email              *string         `json:"email"`
	Address            *string         `json:"address"`
	Notes              *string         `json:"notes"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:         c.CustomerID,
		Name:               c.Name,
		Phone:              c.Phone,
		DNI:                c.DNI,
		Email:              c.Email,
		Address:            c.Address,
		Notes:              c.Notes,
		OutstandingBalance: c.OutstandingBalance,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
		LastUpdatedAt:      c.LastUpdatedAt,
		LastUpdatedBy:      c.LastUpdatedBy,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to response DTOs.
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return res
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit           int     `form:"limit,default=20"`
	NextToken       *string `form:"nextToken"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
}

// ListCustomersResponse wraps a page of customers plus the next page token.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}
