package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceChangeRecord is an immutable audit record of a cost or sale price
// change. One is created whenever a product update changes either price
// field; records are never mutated or deleted.
type PriceChangeRecord struct {
	RecordID          string          `json:"recordID"`
	ProductID         string          `json:"productID"`
	PreviousCost      decimal.Decimal `json:"previousCost"`
	PreviousSalePrice decimal.Decimal `json:"previousSalePrice"`
	NewCost           decimal.Decimal `json:"newCost"`
	NewSalePrice      decimal.Decimal `json:"newSalePrice"`
	Reason            string          `json:"reason"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}
