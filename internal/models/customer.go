package models

import "github.com/shopspring/decimal"

// Customer mirrors the customers table. OutstandingBalance is the
// materialized view of the customer's ledger entries; it is only ever
// written in the same transaction as a ledger mutation.
type Customer struct {
	CustomerID         string          `db:"customer_id"`
	Name               string          `db:"name"`
	Phone              string          `db:"phone"`
	DNI                *string         `db:"dni"`
	Email              *string         `db:"email"`
	Address            *string         `db:"address"`
	Notes              *string         `db:"notes"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`
	IsActive           bool            `db:"is_active"`
	AuditFields
}
