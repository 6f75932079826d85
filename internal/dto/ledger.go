package dto

import (
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCreditRequest defines a manual credit extension (no associated sale).
type RecordCreditRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description string          `json:"description" binding:"required"`
}

// RecordPaymentRequest defines a payment against a customer's balance.
type RecordPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=CASH MOBILE_WALLET BANK_TRANSFER CARD"`
	ReferenceNumber *string         `json:"referenceNumber"`
	ReceiptRef      *string         `json:"receiptRef"`
}

// AmendLedgerEntryRequest defines a correction to a recorded entry.
// Pointers distinguish "leave as is" from explicit new values.
type AmendLedgerEntryRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Description   *string          `json:"description"`
	PaymentMethod *string          `json:"paymentMethod" binding:"omitempty,oneof=CASH MOBILE_WALLET BANK_TRANSFER CARD"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID         string          `json:"entryID"`
	CustomerID      string          `json:"customerID"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ReferenceNumber *string         `json:"referenceNumber"`
	ReceiptRef      *string         `json:"receiptRef"`
	SaleID          *string         `json:"saleID"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy   string          `json:"lastUpdatedBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		CustomerID:      e.CustomerID,
		Kind:            string(e.Kind),
		Amount:          e.Amount,
		Description:     e.Description,
		PaymentMethod:   string(e.PaymentMethod),
		ReferenceNumber: e.ReferenceNumber,
		ReceiptRef:      e.ReceiptRef,
		SaleID:          e.SaleID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
}

// ToListLedgerEntryResponse converts a slice of entries to response DTOs.
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(&e)
	}
	return res
}

// ListLedgerEntriesParams defines query parameters for listing a customer's entries.
type ListLedgerEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerEntriesResponse wraps a page of entries plus the next page token.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ReconcileResponse reports the outcome of a balance reconciliation.
type ReconcileResponse struct {
	CustomerID     string          `json:"customerID"`
	CachedBalance  decimal.Decimal `json:"cachedBalance"`
	LedgerBalance  decimal.Decimal `json:"ledgerBalance"`
	Consistent     bool            `json:"consistent"`
	Repaired       bool            `json:"repaired"`
	ReconciledAt  time.Time       `json:"reconciledAt"`
}
