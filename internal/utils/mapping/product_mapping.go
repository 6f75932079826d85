package mapping

import (
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:              d.ProductID,
		Name:                   d.Name,
		Code:                   d.Code,
		Stock:                  d.Stock,
		CostPrice:              d.CostPrice,
		SalePrice:              d.SalePrice,
		Category:               d.Category,
		SupplierID:             d.SupplierID,
		ExpirationDate:         d.ExpirationDate,
		LowStockThreshold:      d.LowStockThreshold,
		CriticalStockThreshold: d.CriticalStockThreshold,
		IsActive:               d.IsActive,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:              m.ProductID,
		Name:                   m.Name,
		Code:                   m.Code,
		Stock:                  m.Stock,
		CostPrice:              m.CostPrice,
		SalePrice:              m.SalePrice,
		Category:               m.Category,
		SupplierID:             m.SupplierID,
		ExpirationDate:         m.ExpirationDate,
		LowStockThreshold:      m.LowStockThreshold,
		CriticalStockThreshold: m.CriticalStockThreshold,
		IsActive:               m.IsActive,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}

// ToModelPriceChangeRecord converts a domain PriceChangeRecord to its model
func ToModelPriceChangeRecord(d domain.PriceChangeRecord) models.PriceChangeRecord {
	return models.PriceChangeRecord{
		RecordID:          d.RecordID,
		ProductID:         d.ProductID,
		PreviousCost:      d.PreviousCost,
		PreviousSalePrice: d.PreviousSalePrice,
		NewCost:           d.NewCost,
		NewSalePrice:      d.NewSalePrice,
		Reason:            d.Reason,
		CreatedAt:         d.CreatedAt,
		CreatedBy:         d.CreatedBy,
	}
}

// ToDomainPriceChangeRecord converts a model PriceChangeRecord to its domain form
func ToDomainPriceChangeRecord(m models.PriceChangeRecord) domain.PriceChangeRecord {
	return domain.PriceChangeRecord{
		RecordID:          m.RecordID,
		ProductID:         m.ProductID,
		PreviousCost:      m.PreviousCost,
		PreviousSalePrice: m.PreviousSalePrice,
		NewCost:           m.NewCost,
		NewSalePrice:      m.NewSalePrice,
		Reason:            m.Reason,
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
	}
}

// ToDomainPriceChangeRecordSlice converts a slice of model records to domain form
func ToDomainPriceChangeRecordSlice(ms []models.PriceChangeRecord) []domain.PriceChangeRecord {
	ds := make([]domain.PriceChangeRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPriceChangeRecord(m)
	}
	return ds
}
