package mapping

import (
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	var method *string
	if d.PaymentMethod != "" {
		s := string(d.PaymentMethod)
		method = &s
	}
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		CustomerID:      d.CustomerID,
		Kind:            models.EntryKind(d.Kind),
		Amount:          d.Amount,
		Description:     d.Description,
		PaymentMethod:   method,
		ReferenceNumber: d.ReferenceNumber,
		ReceiptRef:      d.ReceiptRef,
		SaleID:          d.SaleID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	var method domain.PaymentMethod
	if m.PaymentMethod != nil {
		method = domain.PaymentMethod(*m.PaymentMethod)
	}
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		CustomerID:      m.CustomerID,
		Kind:            domain.EntryKind(m.Kind),
		Amount:          m.Amount,
		Description:     m.Description,
		PaymentMethod:   method,
		ReferenceNumber: m.ReferenceNumber,
		ReceiptRef:      m.ReceiptRef,
		SaleID:          m.SaleID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
