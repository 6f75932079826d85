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
	ErrCreditNeedsCustomer = errors.New("credit sales require a customer")
	ErrCashWithCustomer    = errors.New("cash sales must not name a customer")
)

// saleService registers and reads sales.
type saleService struct {
	saleRepo portsrepo.SaleRepositoryFacade
	notifier portssvc.ChangeNotifier
}

// NewSaleService creates a new sale service.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, notifier portssvc.ChangeNotifier) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo: saleRepo,
		notifier: notifier,
	}
}

// Ensure saleService implements the portssvc.SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// GetSaleByID retrieves a sale with its line items.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

// ListSales retrieves a paginated list of sales, newest first.
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	sales, nextToken, err := s.saleRepo.ListSales(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListSalesResponse{
		Sales:     dto.ToListSaleResponse(sales),
		NextToken: nextToken,
	}, nil
}

// RegisterSale validates the request and hands the whole registration to the
// repository as one transaction. With an idempotency key, a retried request
// returns the sale registered by the first attempt instead of selling the
// stock twice.
func (s *saleService) RegisterSale(ctx context.Context, req dto.RegisterSaleRequest, userID string) (*domain.Sale, error) {
	kind := domain.SaleKind(req.Kind)
	switch kind {
	case domain.SaleCredit:
		if req.CustomerID == nil || *req.CustomerID == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCreditNeedsCustomer)
		}
	case domain.SaleCash:
		if req.CustomerID != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCashWithCustomer)
		}
	default:
		return nil, fmt.Errorf("%w: unknown sale kind %q", apperrors.ErrValidation, req.Kind)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item", apperrors.ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for product %s must be greater than zero", apperrors.ErrValidation, item.ProductID)
		}
	}

	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		existing, err := s.saleRepo.FindSaleByIdempotencyKey(ctx, *req.IdempotencyKey)
		if err == nil {
			middleware.GetLoggerFromCtx(ctx).Info("Returning already-registered sale for idempotency key",
				slog.String("sale_id", existing.SaleID),
			)
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	lines := make([]portsrepo.SaleLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = portsrepo.SaleLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	saleID := uuid.NewString()
	input := portsrepo.NewSaleInput{
		SaleID:           saleID,
		Kind:             kind,
		CustomerID:       req.CustomerID,
		Lines:            lines,
		EntryID:          uuid.NewString(),
		EntryDescription: fmt.Sprintf("Credit sale %s", saleID),
		IdempotencyKey:   req.IdempotencyKey,
		UserID:           userID,
		Now:              time.Now().UTC(),
	}

	sale, err := s.saleRepo.CreateSale(ctx, input)
	if err != nil {
		// Two requests with the same key can race past the pre-check; the
		// unique index decides the winner and the loser returns its sale.
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
			return s.saleRepo.FindSaleByIdempotencyKey(ctx, *req.IdempotencyKey)
		}
		return nil, err
	}

	publishEvent(ctx, s.notifier, domain.TopicSales, sale.SaleID, "created")
	for _, line := range lines {
		publishEvent(ctx, s.notifier, domain.TopicProducts, line.ProductID, "updated")
	}
	if kind == domain.SaleCredit {
		publishEvent(ctx, s.notifier, domain.TopicCustomers, *req.CustomerID, "updated")
		publishEvent(ctx, s.notifier, domain.TopicLedgerEntries, input.EntryID, "created")
	}
	return sale, nil
}
