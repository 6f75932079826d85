package services

import (
	"context"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/dto"
)

// LedgerReaderSvc defines read operations for the credit ledger
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific ledger entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByCustomer retrieves a customer's ledger entries, most
	// recent first, with token pagination.
	ListEntriesByCustomer(ctx context.Context, customerID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)

	// ReconcileCustomer recomputes the customer's balance from the ledger and
	// compares it against the cached value. A mismatch is repaired and
	// reported as a consistency violation.
	ReconcileCustomer(ctx context.Context, customerID string) (*dto.ReconcileResponse, error)
}

// LedgerWriterSvc defines write operations for the credit ledger
type LedgerWriterSvc interface {
	// RecordCredit appends a CREDIT entry, increasing what the customer owes.
	// The customer's cached balance moves in the same transaction.
	RecordCredit(ctx context.Context, customerID string, req dto.RecordCreditRequest, userID string) (*domain.LedgerEntry, error)

	// RecordPayment appends a PAYMENT entry, decreasing what the customer
	// owes. A payment larger than the outstanding balance at lock time is
	// rejected with *apperrors.ExceedsBalanceError.
	RecordPayment(ctx context.Context, customerID string, req dto.RecordPaymentRequest, userID string) (*domain.LedgerEntry, error)

	// AmendEntry corrects a recorded entry. The customer's cached balance is
	// adjusted by the amount difference in the same transaction.
	AmendEntry(ctx context.Context, entryID string, req dto.AmendLedgerEntryRequest, userID string) (*domain.LedgerEntry, error)

	// RemoveEntry deletes a mistaken entry and backs its effect out of the
	// customer's cached balance.
	RemoveEntry(ctx context.Context, entryID string, userID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
