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
	ErrNegativePrice  = errors.New("prices must not be negative")
	ErrZeroDelta      = errors.New("stock adjustment delta must not be zero")
	ErrThresholdOrder = errors.New("critical stock threshold must not exceed low stock threshold")
)

// defaultPriceChangeReason is recorded when a price changes and the caller
// gave no reason.
const defaultPriceChangeReason = "Price update"

// productService provides inventory operations on products.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	notifier    portssvc.ChangeNotifier
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, notifier portssvc.ChangeNotifier) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		notifier:    notifier,
	}
}

// Ensure productService implements the portssvc.ProductSvcFacade interface
var _ portssvc.ProductSvcFacade = (*productService)(nil)

// publishEvent sends a change notification after a committed mutation. It is
// best-effort: a notifier failure is logged and never fails the operation
// whose data is already durable.
func publishEvent(ctx context.Context, notifier portssvc.ChangeNotifier, topic domain.Topic, entityID, action string) {
	if notifier == nil {
		return
	}
	event := domain.ChangeEvent{
		Topic:      topic,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if err := notifier.Publish(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish change event",
			slog.String("topic", string(topic)),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()),
		)
	}
}

func validateThresholds(low, critical int64) error {
	if low > 0 && critical > 0 && critical > low {
		return fmt.Errorf("%w: critical=%d low=%d", ErrThresholdOrder, critical, low)
	}
	return nil
}

// CreateProduct persists a new product after validation.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	if req.CostPrice.IsNegative() || req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativePrice)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: initial stock must not be negative", apperrors.ErrValidation)
	}

	low := int64(domain.DefaultLowStockThreshold)
	if req.LowStockThreshold != nil {
		low = *req.LowStockThreshold
	}
	critical := int64(domain.DefaultCriticalStockThreshold)
	if req.CriticalStockThreshold != nil {
		critical = *req.CriticalStockThreshold
	}
	if err := validateThresholds(low, critical); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:              uuid.NewString(),
		Name:                   req.Name,
		Code:                   req.Code,
		Stock:                  req.Stock,
		CostPrice:              req.CostPrice,
		SalePrice:              req.SalePrice,
		Category:               req.Category,
		SupplierID:             req.SupplierID,
		ExpirationDate:         req.ExpirationDate,
		LowStockThreshold:      low,
		CriticalStockThreshold: critical,
		IsActive:               true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicProducts, product.ProductID, "created")
	return &product, nil
}

// GetProductByID retrieves a product by its ID.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

// GetProductByCode retrieves a product by its barcode / lookup code.
func (s *productService) GetProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: product code is required", apperrors.ErrValidation)
	}
	return s.productRepo.FindProductByCode(ctx, code)
}

// ListProducts retrieves a paginated list of products.
func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	products, nextToken, err := s.productRepo.ListProducts(ctx, params.Limit, params.NextToken, params.IncludeInactive)
	if err != nil {
		return nil, err
	}
	return &dto.ListProductsResponse{
		Products:  dto.ToListProductResponse(products),
		NextToken: nextToken,
	}, nil
}

// UpdateProduct updates a product's details. The repository merges the
// changes under a row lock so the price diff is taken against the stored row;
// a change to either price field produces exactly one price history record in
// the same transaction.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	if (req.CostPrice != nil && req.CostPrice.IsNegative()) ||
		(req.SalePrice != nil && req.SalePrice.IsNegative()) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativePrice)
	}
	if req.LowStockThreshold != nil && req.CriticalStockThreshold != nil {
		if err := validateThresholds(*req.LowStockThreshold, *req.CriticalStockThreshold); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	reason := defaultPriceChangeReason
	if req.PriceChangeReason != nil && *req.PriceChangeReason != "" {
		reason = *req.PriceChangeReason
	}

	changes := domain.ProductChanges{
		Name:                   req.Name,
		Code:                   req.Code,
		CostPrice:              req.CostPrice,
		SalePrice:              req.SalePrice,
		Category:               req.Category,
		SupplierID:             req.SupplierID,
		ExpirationDate:         req.ExpirationDate,
		LowStockThreshold:      req.LowStockThreshold,
		CriticalStockThreshold: req.CriticalStockThreshold,
		PriceChangeReason:      reason,
	}

	updated, err := s.productRepo.UpdateProduct(ctx, productID, changes, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicProducts, productID, "updated")
	return updated, nil
}

// AdjustStock applies a manual stock delta (damage, correction, recount).
func (s *productService) AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrZeroDelta)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: a reason is required for stock adjustments", apperrors.ErrValidation)
	}

	product, err := s.productRepo.AdjustStock(ctx, productID, req.Delta, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Stock adjusted",
		slog.String("product_id", productID),
		slog.Int64("delta", req.Delta),
		slog.String("reason", req.Reason),
	)
	publishEvent(ctx, s.notifier, domain.TopicProducts, productID, "updated")
	return product, nil
}

// ListPriceHistory retrieves the recorded price changes for a product.
func (s *productService) ListPriceHistory(ctx context.Context, productID string, limit int) ([]domain.PriceChangeRecord, error) {
	// Verify the product exists so an empty history is distinguishable from
	// an unknown product.
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return nil, err
	}

	records, err := s.productRepo.ListPriceHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// DeactivateProduct marks a product as inactive.
func (s *productService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	if err := s.productRepo.DeactivateProduct(ctx, productID, userID, time.Now().UTC()); err != nil {
		return err
	}
	publishEvent(ctx, s.notifier, domain.TopicProducts, productID, "deleted")
	return nil
}
