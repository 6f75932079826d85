package dto

import (
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
)

// CreateOperatorRequest defines the data needed to create a new operator.
type CreateOperatorRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// UpdateOperatorRequest defines the data allowed for updating an operator.
type UpdateOperatorRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// OperatorResponse defines the data returned for an operator.
type OperatorResponse struct {
	OperatorID    string    `json:"operatorID"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToOperatorResponse converts a domain.Operator to OperatorResponse DTO.
func ToOperatorResponse(o *domain.Operator) OperatorResponse {
	return OperatorResponse{
		OperatorID:    o.OperatorID,
		Name:          o.Name,
		Phone:         o.Phone,
		IsActive:      o.IsActive,
		CreatedAt:     o.CreatedAt,
		CreatedBy:     o.CreatedBy,
		LastUpdatedAt: o.LastUpdatedAt,
		LastUpdatedBy: o.LastUpdatedBy,
	}
}

// ToListOperatorResponse converts a slice of domain.Operator to response DTOs.
func ToListOperatorResponse(operators []domain.Operator) []OperatorResponse {
	res := make([]OperatorResponse, len(operators))
	for i, o := range operators {
		res[i] = ToOperatorResponse(&o)
	}
	return res
}
