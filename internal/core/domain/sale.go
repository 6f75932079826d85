package domain

import "github.com/shopspring/decimal"

// SaleKind distinguishes cash sales from credit ("fiado") sales.
type SaleKind string

const (
	SaleCash   SaleKind = "CASH"
	SaleCredit SaleKind = "CREDIT"
)

// SaleItem is one line of a sale. UnitPriceAtSale is the product's sale price
// snapshotted when the sale was registered; it is never recomputed, so
// historical sales stay accurate when prices change later.
type SaleItem struct {
	ProductID       string          `json:"productID"`
	ProductName     string          `json:"productName"`
	Quantity        int64           `json:"quantity"`
	UnitPriceAtSale decimal.Decimal `json:"unitPriceAtSale"`
}

// Subtotal is Quantity times the snapshotted unit price.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPriceAtSale.Mul(decimal.NewFromInt(i.Quantity))
}

// Sale is an append-only audit record of a completed sale. A CREDIT sale
// always has exactly one corresponding CREDIT ledger entry for the same
// amount.
type Sale struct {
	SaleID         string          `json:"saleID"`
	Kind           SaleKind        `json:"kind"`
	CustomerID     *string         `json:"customerID"` // Required iff Kind == SaleCredit
	Items          []SaleItem      `json:"items"`
	Total          decimal.Decimal `json:"total"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	AuditFields
}
