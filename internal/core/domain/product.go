package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the derived availability state of a product. It is never
// stored; compute it with Product.Status so it cannot drift from the stock
// and threshold fields that determine it.
type ProductStatus string

const (
	StatusAvailable     ProductStatus = "AVAILABLE"
	StatusLowStock      ProductStatus = "LOW_STOCK"
	StatusCriticalStock ProductStatus = "CRITICAL_STOCK"
	StatusOutOfStock    ProductStatus = "OUT_OF_STOCK"
	StatusExpired       ProductStatus = "EXPIRED"
)

// Default thresholds applied when a product does not define its own.
const (
	DefaultLowStockThreshold      = 10
	DefaultCriticalStockThreshold = 3
)

// Product represents an inventory item within the core domain.
// Stock is only ever changed through the inventory store's AdjustStock path.
type Product struct {
	ProductID              string          `json:"productID"`
	Name                   string          `json:"name"`
	Code                   string          `json:"code"` // Unique; barcode or manual lookup key
	Stock                  int64           `json:"stock"`
	CostPrice              decimal.Decimal `json:"costPrice"`
	SalePrice              decimal.Decimal `json:"salePrice"`
	Category               string          `json:"category"`
	SupplierID             *string         `json:"supplierID"`
	ExpirationDate         *time.Time      `json:"expirationDate"`
	LowStockThreshold      int64           `json:"lowStockThreshold"`
	CriticalStockThreshold int64           `json:"criticalStockThreshold"`
	IsActive               bool            `json:"isActive"`
	AuditFields
}

// ProductChanges is a partial update to a product. Nil fields are left
// untouched. Stock is deliberately absent; stock only moves through sales,
// purchases and explicit adjustments. PriceChangeReason is recorded in the
// price history when the merged prices differ from the stored ones.
type ProductChanges struct {
	Name                   *string
	Code                   *string
	CostPrice              *decimal.Decimal
	SalePrice              *decimal.Decimal
	Category               *string
	SupplierID             *string
	ExpirationDate         *time.Time
	LowStockThreshold      *int64
	CriticalStockThreshold *int64
	PriceChangeReason      string
}

// Apply merges the non-nil fields onto a product.
func (c ProductChanges) Apply(p *Product) {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Code != nil {
		p.Code = *c.Code
	}
	if c.CostPrice != nil {
		p.CostPrice = *c.CostPrice
	}
	if c.SalePrice != nil {
		p.SalePrice = *c.SalePrice
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.SupplierID != nil {
		p.SupplierID = c.SupplierID
	}
	if c.ExpirationDate != nil {
		p.ExpirationDate = c.ExpirationDate
	}
	if c.LowStockThreshold != nil {
		p.LowStockThreshold = *c.LowStockThreshold
	}
	if c.CriticalStockThreshold != nil {
		p.CriticalStockThreshold = *c.CriticalStockThreshold
	}
}

// Status derives the availability state from stock, thresholds and expiration.
// Expiration wins over stock levels.
func (p Product) Status() ProductStatus {
	return p.StatusAt(time.Now().UTC())
}

// StatusAt is Status evaluated against an explicit reference time.
func (p Product) StatusAt(now time.Time) ProductStatus {
	if p.ExpirationDate != nil && !p.ExpirationDate.After(now) {
		return StatusExpired
	}
	if p.Stock <= 0 {
		return StatusOutOfStock
	}
	low := p.LowStockThreshold
	if low <= 0 {
		low = DefaultLowStockThreshold
	}
	critical := p.CriticalStockThreshold
	if critical <= 0 {
		critical = DefaultCriticalStockThreshold
	}
	switch {
	case p.Stock <= critical:
		return StatusCriticalStock
	case p.Stock <= low:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}
