package repositories

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByCustomer retrieves a token-paginated list of a customer's
	// ledger entries, newest first.
	ListEntriesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumEntriesByCustomer computes sum(CREDIT) - sum(PAYMENT) over all of a
	// customer's entries. This is the source of truth the cached outstanding
	// balance must agree with.
	SumEntriesByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error)
}

// LedgerWriter defines the mutation paths for the ledger. Every method
// updates the entry log and the customer's cached outstanding balance in the
// same database transaction; the cache is never written on its own.
type LedgerWriter interface {
	// AppendEntry appends a ledger entry and applies its effect to the
	// customer's balance under a row lock. For PAYMENT entries it fails with
	// *apperrors.ExceedsBalanceError when the amount is larger than the
	// outstanding balance at lock time. Returns the stored entry and the
	// customer with its updated balance.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, *domain.Customer, error)

	// AmendEntry replaces an entry's amount, description and payment method,
	// reversing the old amount's balance effect and applying the new one as a
	// single atomic step.
	AmendEntry(ctx context.Context, entryID string, newAmount decimal.Decimal, newDescription string, newMethod domain.PaymentMethod, userID string, now time.Time) (*domain.LedgerEntry, error)

	// RemoveEntry reverses an entry's balance effect and deletes it
	// atomically.
	RemoveEntry(ctx context.Context, entryID string, userID string, now time.Time) error

	// RepairCustomerBalance recomputes the customer's balance from the ledger
	// under a row lock and writes it to the cache. It is the only sanctioned
	// write of the cached balance outside a ledger mutation, reserved for
	// reconciliation. Returns the recomputed balance.
	RepairCustomerBalance(ctx context.Context, customerID string, userID string, now time.Time) (decimal.Decimal, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
