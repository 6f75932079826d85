package repositories

import (
	"context"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a token-paginated list of customers.
	ListCustomers(ctx context.Context, limit int, nextToken *string, includeInactive bool) ([]domain.Customer, *string, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates contact fields of an existing customer. The
	// outstanding balance is never written through this path; it only moves
	// together with ledger entries.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeactivateCustomer marks a customer as inactive (soft retire).
	// Customers are never hard-deleted while referenced by sales or ledger
	// entries.
	DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
