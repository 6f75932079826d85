package domain

import (
	"github.com/shopspring/decimal"
)

// Customer represents a credit ("fiado") account holder.
//
// OutstandingBalance is a materialized cache of the ledger: at all times it
// equals the sum of CREDIT entries minus the sum of PAYMENT entries for the
// customer. Every mutation of the ledger must update it in the same atomic
// unit, or the cache diverges from the truth.
type Customer struct {
	CustomerID         string          `json:"customerID"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone"`
	DNI                *string         `json:"dni"`
	Email              *string         `json:"email"`
	Address            *string         `json:"address"`
	Notes              *string         `json:"notes"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}
