package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a product provider.
type Supplier struct {
	SupplierID   string  `json:"supplierID"`
	Name         string  `json:"name"`
	RUC          *string `json:"ruc"`
	ContactName  *string `json:"contactName"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	LeadTimeDays int     `json:"leadTimeDays"`
	Notes        *string `json:"notes"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}

// PurchaseStatus tracks the lifecycle of a supplier purchase.
type PurchaseStatus string

const (
	PurchaseOrdered   PurchaseStatus = "ORDERED"
	PurchaseReceived  PurchaseStatus = "RECEIVED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

// SupplierPurchase is a restocking order placed with a supplier. Receiving it
// applies the quantity as a positive stock adjustment on the product.
type SupplierPurchase struct {
	PurchaseID string          `json:"purchaseID"`
	SupplierID string          `json:"supplierID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Total      decimal.Decimal `json:"total"`
	Status     PurchaseStatus  `json:"status"`
	OrderedAt  time.Time       `json:"orderedAt"`
	ReceivedAt *time.Time      `json:"receivedAt"`
	Notes      *string         `json:"notes"`
	AuditFields
}
