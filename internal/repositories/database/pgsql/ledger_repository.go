package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	"github.com/bodegapos/bodega-backend/internal/models"
	"github.com/bodegapos/bodega-backend/internal/utils/mapping"
	"github.com/bodegapos/bodega-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const ledgerEntryColumns = `entry_id, customer_id, kind, amount, description, payment_method, reference_number, receipt_ref, sale_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(s rowScanner) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := s.Scan(
		&m.EntryID,
		&m.CustomerID,
		&m.Kind,
		&m.Amount,
		&m.Description,
		&m.PaymentMethod,
		&m.ReferenceNumber,
		&m.ReceiptRef,
		&m.SaleID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockCustomerForUpdate selects a customer row FOR UPDATE inside tx.
func lockCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 FOR UPDATE;`
	m, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, apperrors.ErrNotFound
		}
		return models.Customer{}, wrapStorageErr(err, "failed to lock customer "+customerID)
	}
	return m, nil
}

// setCustomerBalanceInTx writes a customer's outstanding balance. GREATEST
// keeps the column non-negative even if a caller slips through with a bad
// delta; the CHECK constraint would reject the write otherwise.
func setCustomerBalanceInTx(ctx context.Context, tx pgx.Tx, customerID string, balance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET outstanding_balance = GREATEST($2, 0), last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, customerID, balance, now, userID)
	if err != nil {
		return wrapStorageErr(err, "failed to update balance for customer "+customerID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s not found during balance update", apperrors.ErrNotFound, customerID)
	}
	return nil
}

// insertLedgerEntryInTx inserts a ledger entry row inside tx.
func insertLedgerEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.CustomerID,
		m.Kind,
		m.Amount,
		m.Description,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.ReceiptRef,
		m.SaleID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return wrapStorageErr(err, "failed to insert ledger entry "+m.EntryID)
	}
	return nil
}

// AppendEntry appends a ledger entry and moves the customer's cached balance
// in the same transaction, under a row lock on the customer. Payments larger
// than the outstanding balance at lock time are rejected; the server-side
// check is authoritative regardless of what the client last saw.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, *domain.Customer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	customer, err := lockCustomerForUpdate(ctx, tx, entry.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if !customer.IsActive {
		return nil, nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, entry.CustomerID)
	}

	if entry.Kind == domain.KindPayment && entry.Amount.GreaterThan(customer.OutstandingBalance) {
		return nil, nil, &apperrors.ExceedsBalanceError{
			CustomerID:  entry.CustomerID,
			Requested:   entry.Amount,
			Outstanding: customer.OutstandingBalance,
		}
	}

	if err := insertLedgerEntryInTx(ctx, tx, entry); err != nil {
		return nil, nil, err
	}

	newBalance := customer.OutstandingBalance.Add(entry.SignedAmount())
	if err := setCustomerBalanceInTx(ctx, tx, entry.CustomerID, newBalance, entry.CreatedBy, entry.CreatedAt); err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	customer.OutstandingBalance = newBalance
	customer.LastUpdatedAt = entry.CreatedAt
	customer.LastUpdatedBy = entry.CreatedBy
	d := mapping.ToDomainCustomer(customer)
	return &entry, &d, nil
}

// AmendEntry replaces an entry's amount, description and payment method. The
// old amount's balance effect is reversed and the new one applied as a single
// atomic step; a correction that would drive the balance negative means the
// ledger and cache disagree about history, so it fails as a consistency
// violation and changes nothing.
func (r *PgxLedgerRepository) AmendEntry(ctx context.Context, entryID string, newAmount decimal.Decimal, newDescription string, newMethod domain.PaymentMethod, userID string, now time.Time) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entry, err := lockLedgerEntryForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	customer, err := lockCustomerForUpdate(ctx, tx, entry.CustomerID)
	if err != nil {
		return nil, err
	}

	oldEffect := mapping.ToDomainLedgerEntry(entry).SignedAmount()
	amended := mapping.ToDomainLedgerEntry(entry)
	amended.Amount = newAmount
	amended.Description = newDescription
	if amended.Kind == domain.KindPayment {
		amended.PaymentMethod = newMethod
	}
	newEffect := amended.SignedAmount()

	newBalance := customer.OutstandingBalance.Sub(oldEffect).Add(newEffect)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: amending entry %s would drive customer %s balance to %s",
			apperrors.ErrConsistency, entryID, entry.CustomerID, newBalance.StringFixed(2))
	}

	var method *string
	if amended.PaymentMethod != "" {
		s := string(amended.PaymentMethod)
		method = &s
	}
	updateQuery := `
		UPDATE ledger_entries
		SET amount = $2, description = $3, payment_method = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, newAmount, newDescription, method, now, userID); err != nil {
		return nil, wrapStorageErr(err, "failed to amend ledger entry "+entryID)
	}

	if err := setCustomerBalanceInTx(ctx, tx, entry.CustomerID, newBalance, userID, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	amended.LastUpdatedAt = now
	amended.LastUpdatedBy = userID
	return &amended, nil
}

// RemoveEntry reverses an entry's balance effect and deletes it atomically.
func (r *PgxLedgerRepository) RemoveEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entry, err := lockLedgerEntryForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}

	customer, err := lockCustomerForUpdate(ctx, tx, entry.CustomerID)
	if err != nil {
		return err
	}

	effect := mapping.ToDomainLedgerEntry(entry).SignedAmount()
	newBalance := customer.OutstandingBalance.Sub(effect)
	if newBalance.IsNegative() {
		return fmt.Errorf("%w: removing entry %s would drive customer %s balance to %s",
			apperrors.ErrConsistency, entryID, entry.CustomerID, newBalance.StringFixed(2))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID); err != nil {
		return wrapStorageErr(err, "failed to delete ledger entry "+entryID)
	}

	if err := setCustomerBalanceInTx(ctx, tx, entry.CustomerID, newBalance, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func lockLedgerEntryForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (models.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1 FOR UPDATE;`
	m, err := scanLedgerEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LedgerEntry{}, apperrors.ErrNotFound
		}
		return models.LedgerEntry{}, wrapStorageErr(err, "failed to lock ledger entry "+entryID)
	}
	return m, nil
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr(err, "failed to find ledger entry by ID "+entryID)
	}

	d := mapping.ToDomainLedgerEntry(m)
	return &d, nil
}

// ListEntriesByCustomer retrieves a customer's ledger entries, newest first,
// with token pagination.
func (r *PgxLedgerRepository) ListEntriesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries`
	filterClause := `WHERE customer_id = $1`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{customerID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause := `AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $2;"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, wrapStorageErr(err, "failed to query ledger entries for customer "+customerID)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLedgerEntry(rows)
		if scanErr != nil {
			return nil, nil, wrapStorageErr(scanErr, "failed to scan ledger entry row for customer "+customerID)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapStorageErr(err, "error iterating ledger entry rows for customer "+customerID)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}

// RepairCustomerBalance recomputes a customer's balance from the ledger
// under a row lock and writes it to the cache. Reserved for reconciliation.
func (r *PgxLedgerRepository) RepairCustomerBalance(ctx context.Context, customerID string, userID string, now time.Time) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockCustomerForUpdate(ctx, tx, customerID); err != nil {
		return decimal.Zero, err
	}

	sumQuery := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE customer_id = $1;
	`
	var sum decimal.Decimal
	if err := tx.QueryRow(ctx, sumQuery, customerID).Scan(&sum); err != nil {
		return decimal.Zero, wrapStorageErr(err, "failed to sum ledger entries for customer "+customerID)
	}

	if err := setCustomerBalanceInTx(ctx, tx, customerID, sum, userID, now); err != nil {
		return decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// SumEntriesByCustomer computes sum(CREDIT) - sum(PAYMENT) over the
// customer's whole ledger. This is the ground truth the cached outstanding
// balance is reconciled against.
func (r *PgxLedgerRepository) SumEntriesByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE customer_id = $1;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, customerID).Scan(&sum); err != nil {
		return decimal.Zero, wrapStorageErr(err, "failed to sum ledger entries for customer "+customerID)
	}
	return sum, nil
}
