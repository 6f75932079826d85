package mapping

import (
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:         d.CustomerID,
		Name:               d.Name,
		Phone:              d.Phone,
		DNI:                d.DNI,
		Email:              d.Email,
		Address:            d.Address,
		Notes:              d.Notes,
		OutstandingBalance: d.OutstandingBalance,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:         m.CustomerID,
		Name:               m.Name,
		Phone:              m.Phone,
		DNI:                m.DNI,
		Email:              m.Email,
		Address:            m.Address,
		Notes:              m.Notes,
		OutstandingBalance: m.OutstandingBalance,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
