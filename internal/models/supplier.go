package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier mirrors the suppliers table.
type Supplier struct {
	SupplierID   string  `db:"supplier_id"`
	Name         string  `db:"name"`
	RUC          *string `db:"ruc"`
	ContactName  *string `db:"contact_name"`
	Phone        *string `db:"phone"`
	Email        *string `db:"email"`
	Address      *string `db:"address"`
	LeadTimeDays int     `db:"lead_time_days"`
	Notes        *string `db:"notes"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}

// SupplierPurchase mirrors the supplier_purchases table.
type SupplierPurchase struct {
	PurchaseID string          `db:"purchase_id"`
	SupplierID string          `db:"supplier_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int64           `db:"quantity"`
	UnitCost   decimal.Decimal `db:"unit_cost"`
	Total      decimal.Decimal `db:"total"`
	Status     string          `db:"status"` // ORDERED | RECEIVED | CANCELLED
	OrderedAt  time.Time       `db:"ordered_at"`
	ReceivedAt *time.Time      `db:"received_at"`
	Notes      *string         `db:"notes"`
	AuditFields
}
