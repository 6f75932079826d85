package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// supplierListFetchLimit is deliberately larger than any realistic supplier
// roster for a single shop.
const supplierListFetchLimit = 500

// supplierService provides operations on suppliers and restocking purchases.
type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	notifier     portssvc.ChangeNotifier
}

// NewSupplierService creates a new supplier service.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, notifier portssvc.ChangeNotifier) portssvc.SupplierSvcFacade {
	return &supplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		notifier:     notifier,
	}
}

// Ensure supplierService implements the portssvc.SupplierSvcFacade interface
var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

// GetSupplierByID retrieves a supplier by its ID.
func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	return s.supplierRepo.FindSupplierByID(ctx, supplierID)
}

// ListSuppliers retrieves all suppliers.
func (s *supplierService) ListSuppliers(ctx context.Context, includeInactive bool) ([]domain.Supplier, error) {
	suppliers, _, err := s.supplierRepo.ListSuppliers(ctx, supplierListFetchLimit, nil, includeInactive)
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CreateSupplier persists a new supplier.
func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, userID string) (*domain.Supplier, error) {
	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID:   uuid.NewString(),
		Name:         req.Name,
		RUC:          req.RUC,
		ContactName:  req.ContactName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		LeadTimeDays: req.LeadTimeDays,
		Notes:        req.Notes,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// UpdateSupplier updates a supplier's details.
func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error) {
	existing, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.RUC != nil {
		updated.RUC = req.RUC
	}
	if req.ContactName != nil {
		updated.ContactName = req.ContactName
	}
	if req.Phone != nil {
		updated.Phone = req.Phone
	}
	if req.Email != nil {
		updated.Email = req.Email
	}
	if req.Address != nil {
		updated.Address = req.Address
	}
	if req.LeadTimeDays != nil {
		updated.LeadTimeDays = *req.LeadTimeDays
	}
	if req.Notes != nil {
		updated.Notes = req.Notes
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := s.supplierRepo.UpdateSupplier(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeactivateSupplier marks a supplier as inactive. Products keep their
// supplier reference; it only stops new purchases.
func (s *supplierService) DeactivateSupplier(ctx context.Context, supplierID string, userID string) error {
	return s.supplierRepo.DeactivateSupplier(ctx, supplierID, userID, time.Now().UTC())
}

// GetPurchaseByID retrieves a purchase order by its ID.
func (s *supplierService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.SupplierPurchase, error) {
	return s.supplierRepo.FindPurchaseByID(ctx, purchaseID)
}

// ListPurchasesBySupplier retrieves a supplier's purchase orders, newest first.
func (s *supplierService) ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.SupplierPurchase, error) {
	if _, err := s.supplierRepo.FindSupplierByID(ctx, supplierID); err != nil {
		return nil, err
	}

	purchases, _, err := s.supplierRepo.ListPurchasesBySupplier(ctx, supplierID, limit, nil)
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

// CreatePurchase records a restocking order in ORDERED state. Stock does not
// move until the purchase is received.
func (s *supplierService) CreatePurchase(ctx context.Context, supplierID string, req dto.CreatePurchaseRequest, userID string) (*domain.SupplierPurchase, error) {
	if !req.UnitCost.IsPositive() {
		return nil, fmt.Errorf("%w: unit cost must be greater than zero", apperrors.ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	}

	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, fmt.Errorf("%w: supplier %s is inactive", apperrors.ErrValidation, supplierID)
	}

	product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, req.ProductID)
	}

	now := time.Now().UTC()
	purchase := domain.SupplierPurchase{
		PurchaseID: uuid.NewString(),
		SupplierID: supplierID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		UnitCost:   req.UnitCost,
		Total:      req.UnitCost.Mul(decimal.NewFromInt(req.Quantity)),
		Status:     domain.PurchaseOrdered,
		OrderedAt:  now,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.supplierRepo.SavePurchase(ctx, purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ReceivePurchase marks an ORDERED purchase as RECEIVED and applies its
// quantity to product stock atomically.
func (s *supplierService) ReceivePurchase(ctx context.Context, purchaseID string, userID string) (*domain.SupplierPurchase, error) {
	purchase, product, err := s.supplierRepo.ReceivePurchase(ctx, purchaseID, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicProducts, product.ProductID, "updated")
	return purchase, nil
}

// CancelPurchase marks an ORDERED purchase as CANCELLED.
func (s *supplierService) CancelPurchase(ctx context.Context, purchaseID string, userID string) error {
	return s.supplierRepo.CancelPurchase(ctx, purchaseID, userID, time.Now().UTC())
}
