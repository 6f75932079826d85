package models

import "github.com/shopspring/decimal"

// Sale mirrors the sales table.
type Sale struct {
	SaleID         string          `db:"sale_id"`
	Kind           string          `db:"kind"` // CASH | CREDIT
	CustomerID     *string         `db:"customer_id"`
	Total          decimal.Decimal `db:"total"`
	IdempotencyKey *string         `db:"idempotency_key"` // Unique when present
	AuditFields
}

// SaleItem mirrors the sale_items table. One row per line of a sale, with the
// unit price snapshotted at sale time.
type SaleItem struct {
	SaleID          string          `db:"sale_id"`
	LineNo          int             `db:"line_no"`
	ProductID       string          `db:"product_id"`
	ProductName     string          `db:"product_name"`
	Quantity        int64           `db:"quantity"`
	UnitPriceAtSale decimal.Decimal `db:"unit_price_at_sale"`
}
