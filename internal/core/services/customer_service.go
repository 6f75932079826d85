package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/google/uuid"
)

var ErrCustomerOwesBalance = errors.New("customer still has an outstanding balance")

// customerService provides operations on credit customers.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	notifier     portssvc.ChangeNotifier
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, notifier portssvc.ChangeNotifier) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

// Ensure customerService implements the portssvc.CustomerSvcFacade interface
var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer persists a new customer with a zero opening balance.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		DNI:        req.DNI,
		Email:      req.Email,
		Address:    req.Address,
		Notes:      req.Notes,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicCustomers, customer.CustomerID, "created")
	return &customer, nil
}

// GetCustomerByID retrieves a customer by its ID.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

// ListCustomers retrieves a paginated list of customers.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	customers, nextToken, err := s.customerRepo.ListCustomers(ctx, params.Limit, params.NextToken, params.IncludeInactive)
	if err != nil {
		return nil, err
	}
	return &dto.ListCustomersResponse{
		Customers: dto.ToListCustomerResponse(customers),
		NextToken: nextToken,
	}, nil
}

// UpdateCustomer updates a customer's contact details. The outstanding
// balance cannot be changed here.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	existing, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.DNI != nil {
		updated.DNI = req.DNI
	}
	if req.Email != nil {
		updated.Email = req.Email
	}
	if req.Address != nil {
		updated.Address = req.Address
	}
	if req.Notes != nil {
		updated.Notes = req.Notes
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, updated); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicCustomers, customerID, "updated")
	return &updated, nil
}

// DeactivateCustomer marks a customer as inactive. A customer who still owes
// money cannot be retired; the debt has to be settled or written off first.
func (s *customerService) DeactivateCustomer(ctx context.Context, customerID string, userID string) error {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer.OutstandingBalance.IsPositive() {
		return fmt.Errorf("%w: %s owes %s", apperrors.ErrValidation, ErrCustomerOwesBalance, customer.OutstandingBalance)
	}

	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, userID, time.Now().UTC()); err != nil {
		return err
	}

	publishEvent(ctx, s.notifier, domain.TopicCustomers, customerID, "deleted")
	return nil
}
