package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the products table. Status is not a column; it is derived
// in the domain layer from stock, thresholds and expiration.
type Product struct {
	ProductID              string          `db:"product_id"`
	Name                   string          `db:"name"`
	Code                   string          `db:"code"` // Unique
	Stock                  int64           `db:"stock"`
	CostPrice              decimal.Decimal `db:"cost_price"`
	SalePrice              decimal.Decimal `db:"sale_price"`
	Category               string          `db:"category"`
	SupplierID             *string         `db:"supplier_id"` // Nullable
	ExpirationDate         *time.Time      `db:"expiration_date"`
	LowStockThreshold      int64           `db:"low_stock_threshold"`
	CriticalStockThreshold int64           `db:"critical_stock_threshold"`
	IsActive               bool            `db:"is_active"`
	AuditFields
}
