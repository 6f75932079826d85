package services

import (
	"context"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer by its unique identifier.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer with a zero outstanding balance.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)

	// UpdateCustomer updates a customer's contact details. The outstanding
	// balance is never written through this path.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)

	// DeactivateCustomer marks a customer as inactive. Fails with a validation
	// error while the customer still owes money.
	DeactivateCustomer(ctx context.Context, customerID string, userID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
