package mapping

import (
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/models"
)

// ToModelSupplier converts a domain Supplier to a model Supplier
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:   d.SupplierID,
		Name:         d.Name,
		RUC:          d.RUC,
		ContactName:  d.ContactName,
		Phone:        d.Phone,
		Email:        d.Email,
		Address:      d.Address,
		LeadTimeDays: d.LeadTimeDays,
		Notes:        d.Notes,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:   m.SupplierID,
		Name:         m.Name,
		RUC:          m.RUC,
		ContactName:  m.ContactName,
		Phone:        m.Phone,
		Email:        m.Email,
		Address:      m.Address,
		LeadTimeDays: m.LeadTimeDays,
		Notes:        m.Notes,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSupplierSlice converts a slice of model Suppliers to domain Suppliers
func ToDomainSupplierSlice(ms []models.Supplier) []domain.Supplier {
	ds := make([]domain.Supplier, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSupplier(m)
	}
	return ds
}

// ToModelSupplierPurchase converts a domain SupplierPurchase to its model
func ToModelSupplierPurchase(d domain.SupplierPurchase) models.SupplierPurchase {
	return models.SupplierPurchase{
		PurchaseID:  d.PurchaseID,
		SupplierID:  d.SupplierID,
		ProductID:   d.ProductID,
		Quantity:    d.Quantity,
		UnitCost:    d.UnitCost,
		Total:       d.Total,
		Status:      string(d.Status),
		OrderedAt:   d.OrderedAt,
		ReceivedAt:  d.ReceivedAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplierPurchase converts a model SupplierPurchase to its domain form
func ToDomainSupplierPurchase(m models.SupplierPurchase) domain.SupplierPurchase {
	return domain.SupplierPurchase{
		PurchaseID:  m.PurchaseID,
		SupplierID:  m.SupplierID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		Total:       m.Total,
		Status:      domain.PurchaseStatus(m.Status),
		OrderedAt:   m.OrderedAt,
		ReceivedAt:  m.ReceivedAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSupplierPurchaseSlice converts model purchases to domain purchases
func ToDomainSupplierPurchaseSlice(ms []models.SupplierPurchase) []domain.SupplierPurchase {
	ds := make([]domain.SupplierPurchase, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSupplierPurchase(m)
	}
	return ds
}
