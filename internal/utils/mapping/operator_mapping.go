package mapping

import (
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/models"
)

// ToModelOperator converts a domain Operator to a model Operator
func ToModelOperator(d domain.Operator) models.Operator {
	return models.Operator{
		OperatorID:  d.OperatorID,
		Name:        d.Name,
		Phone:       d.Phone,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOperator converts a model Operator to a domain Operator
func ToDomainOperator(m models.Operator) domain.Operator {
	return domain.Operator{
		OperatorID:  m.OperatorID,
		Name:        m.Name,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOperatorSlice converts a slice of model Operators to domain Operators
func ToDomainOperatorSlice(ms []models.Operator) []domain.Operator {
	ds := make([]domain.Operator, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOperator(m)
	}
	return ds
}
