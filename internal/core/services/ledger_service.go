package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/google/uuid"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrUnknownPayMethod  = errors.New("unknown payment method")
	ErrAmendNothing      = errors.New("nothing to amend")
	ErrMethodOnCredit    = errors.New("payment method does not apply to credit entries")
)

// ledgerService provides operations on the customer credit ledger.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	notifier     portssvc.ChangeNotifier
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, notifier portssvc.ChangeNotifier) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetEntryByID retrieves a ledger entry by its ID.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.FindEntryByID(ctx, entryID)
}

// ListEntriesByCustomer retrieves a customer's ledger entries, newest first.
func (s *ledgerService) ListEntriesByCustomer(ctx context.Context, customerID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByCustomer(ctx, customerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToListLedgerEntryResponse(entries),
		NextToken: nextToken,
	}, nil
}

// ReconcileCustomer recomputes the balance from the ledger and checks it
// against the cached value. A divergence means some past write skipped the
// atomic update path; it is logged loudly and repaired in place.
func (s *ledgerService) ReconcileCustomer(ctx context.Context, customerID string) (*dto.ReconcileResponse, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ledgerBalance, err := s.ledgerRepo.SumEntriesByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReconcileResponse{
		CustomerID:    customerID,
		CachedBalance: customer.OutstandingBalance,
		LedgerBalance: ledgerBalance,
		Consistent:    customer.OutstandingBalance.Equal(ledgerBalance),
		ReconciledAt:  time.Now().UTC(),
	}
	if resp.Consistent {
		return resp, nil
	}

	middleware.GetLoggerFromCtx(ctx).Error("Cached balance diverged from ledger",
		slog.String("customer_id", customerID),
		slog.String("cached_balance", customer.OutstandingBalance.String()),
		slog.String("ledger_balance", ledgerBalance.String()),
	)

	repaired, err := s.ledgerRepo.RepairCustomerBalance(ctx, customerID, "reconciler", time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to repair balance for customer %s: %w", customerID, err)
	}
	resp.LedgerBalance = repaired
	resp.Repaired = true

	publishEvent(ctx, s.notifier, domain.TopicCustomers, customerID, "updated")
	return resp, nil
}

// RecordCredit appends a CREDIT entry for the customer.
func (s *ledgerService) RecordCredit(ctx context.Context, customerID string, req dto.RecordCreditRequest, userID string) (*domain.LedgerEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		CustomerID:  customerID,
		Kind:        domain.KindCredit,
		Amount:      req.Amount,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	stored, _, err := s.ledgerRepo.AppendEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicLedgerEntries, stored.EntryID, "created")
	publishEvent(ctx, s.notifier, domain.TopicCustomers, customerID, "updated")
	return stored, nil
}

// RecordPayment appends a PAYMENT entry for the customer. The repository
// rejects payments above the outstanding balance under the row lock, so the
// decision is made against the authoritative balance, not a stale read.
func (s *ledgerService) RecordPayment(ctx context.Context, customerID string, req dto.RecordPaymentRequest, userID string) (*domain.LedgerEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if !domain.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrUnknownPayMethod, req.PaymentMethod)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		CustomerID:      customerID,
		Kind:            domain.KindPayment,
		Amount:          req.Amount,
		Description:     req.Description,
		PaymentMethod:   method,
		ReferenceNumber: req.ReferenceNumber,
		ReceiptRef:      req.ReceiptRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	stored, _, err := s.ledgerRepo.AppendEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicLedgerEntries, stored.EntryID, "created")
	publishEvent(ctx, s.notifier, domain.TopicCustomers, customerID, "updated")
	return stored, nil
}

// AmendEntry corrects a recorded entry's amount, description or payment
// method. Unchanged fields keep their current values.
func (s *ledgerService) AmendEntry(ctx context.Context, entryID string, req dto.AmendLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	if req.Amount == nil && req.Description == nil && req.PaymentMethod == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmendNothing)
	}

	existing, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	newAmount := existing.Amount
	if req.Amount != nil {
		newAmount = *req.Amount
	}
	if !newAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	newDescription := existing.Description
	if req.Description != nil {
		newDescription = *req.Description
	}

	newMethod := existing.PaymentMethod
	if req.PaymentMethod != nil {
		if existing.Kind == domain.KindCredit {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMethodOnCredit)
		}
		newMethod = domain.PaymentMethod(*req.PaymentMethod)
		if !domain.ValidPaymentMethod(newMethod) {
			return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrUnknownPayMethod, *req.PaymentMethod)
		}
	}

	amended, err := s.ledgerRepo.AmendEntry(ctx, entryID, newAmount, newDescription, newMethod, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicLedgerEntries, entryID, "updated")
	publishEvent(ctx, s.notifier, domain.TopicCustomers, amended.CustomerID, "updated")
	return amended, nil
}

// RemoveEntry deletes a mistaken entry and reverses its balance effect.
func (s *ledgerService) RemoveEntry(ctx context.Context, entryID string, userID string) error {
	existing, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	if err := s.ledgerRepo.RemoveEntry(ctx, entryID, userID, time.Now().UTC()); err != nil {
		return err
	}

	publishEvent(ctx, s.notifier, domain.TopicLedgerEntries, entryID, "deleted")
	publishEvent(ctx, s.notifier, domain.TopicCustomers, existing.CustomerID, "updated")
	return nil
}
