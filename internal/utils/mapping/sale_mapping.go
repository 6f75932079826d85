package mapping

import (
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale (header only; items map
// separately because they live in their own table).
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		Kind:           string(d.Kind),
		CustomerID:     d.CustomerID,
		Total:          d.Total,
		IdempotencyKey: d.IdempotencyKey,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelSaleItems converts a sale's line items to model rows.
func ToModelSaleItems(saleID string, items []domain.SaleItem) []models.SaleItem {
	ms := make([]models.SaleItem, len(items))
	for i, it := range items {
		ms[i] = models.SaleItem{
			SaleID:          saleID,
			LineNo:          i + 1,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			UnitPriceAtSale: it.UnitPriceAtSale,
		}
	}
	return ms
}

// ToDomainSale converts a model Sale and its item rows to a domain Sale.
func ToDomainSale(m models.Sale, itemRows []models.SaleItem) domain.Sale {
	items := make([]domain.SaleItem, len(itemRows))
	for i, r := range itemRows {
		items[i] = domain.SaleItem{
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			Quantity:        r.Quantity,
			UnitPriceAtSale: r.UnitPriceAtSale,
		}
	}
	return domain.Sale{
		SaleID:         m.SaleID,
		Kind:           domain.SaleKind(m.Kind),
		CustomerID:     m.CustomerID,
		Items:          items,
		Total:          m.Total,
		IdempotencyKey: m.IdempotencyKey,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
