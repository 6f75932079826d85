package domain

import "github.com/shopspring/decimal"

// EntryKind indicates whether a ledger entry extends credit or records a payment.
type EntryKind string

const (
	KindCredit  EntryKind = "CREDIT"
	KindPayment EntryKind = "PAYMENT"
)

// PaymentMethod identifies how a payment was collected.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodMobileWallet PaymentMethod = "MOBILE_WALLET"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCard         PaymentMethod = "CARD"
)

// ValidPaymentMethod reports whether m is one of the known methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodMobileWallet, MethodBankTransfer, MethodCard:
		return true
	}
	return false
}

// LedgerEntry is an immutable record of a credit extension or a payment
// against a customer's balance. Entries are append-only; amendments and
// removals are compensating operations that reconcile the customer balance
// in the same atomic step.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	CustomerID      string          `json:"customerID"`
	Kind            EntryKind       `json:"kind"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	Description     string          `json:"description"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod,omitempty"` // Payments only
	ReferenceNumber *string         `json:"referenceNumber"`
	ReceiptRef      *string         `json:"receiptRef"` // Already-uploaded attachment reference
	SaleID          *string         `json:"saleID"`     // Set when the entry was produced by a credit sale
	AuditFields
}

// SignedAmount is the entry's effect on the customer's outstanding balance:
// positive for credit extensions, negative for payments.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Kind == KindPayment {
		return e.Amount.Neg()
	}
	return e.Amount
}
