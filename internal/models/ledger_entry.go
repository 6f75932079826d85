package models

import "github.com/shopspring/decimal"

// EntryKind mirrors the ledger entry kind enum.
type EntryKind string

const (
	Credit  EntryKind = "CREDIT"
	Payment EntryKind = "PAYMENT"
)

// LedgerEntry mirrors the ledger_entries table.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	CustomerID      string          `db:"customer_id"`
	Kind            EntryKind       `db:"kind"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	PaymentMethod   *string         `db:"payment_method"` // Nullable; payments only
	ReferenceNumber *string         `db:"reference_number"`
	ReceiptRef      *string         `db:"receipt_ref"`
	SaleID          *string         `db:"sale_id"` // Nullable; set for credit-sale entries
	AuditFields
}
