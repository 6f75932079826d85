package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceChangeRecord mirrors the price_history table. Rows are append-only.
type PriceChangeRecord struct {
	RecordID          string          `db:"record_id"`
	ProductID         string          `db:"product_id"`
	PreviousCost      decimal.Decimal `db:"previous_cost"`
	PreviousSalePrice decimal.Decimal `db:"previous_sale_price"`
	NewCost           decimal.Decimal `db:"new_cost"`
	NewSalePrice      decimal.Decimal `db:"new_sale_price"`
	Reason            string          `db:"reason"`
	CreatedAt         time.Time       `db:"created_at"`
	CreatedBy         string          `db:"created_by"`
}
