package domain_test

import (
	"testing"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestProduct_StatusAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		product domain.Product
		want    domain.ProductStatus
	}{
		{
			name:    "plenty of stock",
			product: domain.Product{Stock: 24, LowStockThreshold: 10, CriticalStockThreshold: 3},
			want:    domain.StatusAvailable,
		},
		{
			name:    "at low threshold",
			product: domain.Product{Stock: 10, LowStockThreshold: 10, CriticalStockThreshold: 3},
			want:    domain.StatusLowStock,
		},
		{
			name:    "at critical threshold",
			product: domain.Product{Stock: 3, LowStockThreshold: 10, CriticalStockThreshold: 3},
			want:    domain.StatusCriticalStock,
		},
		{
			name:    "zero stock",
			product: domain.Product{Stock: 0, LowStockThreshold: 10, CriticalStockThreshold: 3},
			want:    domain.StatusOutOfStock,
		},
		{
			name: "expired wins over stock level",
			product: domain.Product{
				Stock:          50,
				ExpirationDate: timePtr(now.Add(-24 * time.Hour)),
			},
			want: domain.StatusExpired,
		},
		{
			name: "expiring exactly now counts as expired",
			product: domain.Product{
				Stock:          50,
				ExpirationDate: timePtr(now),
			},
			want: domain.StatusExpired,
		},
		{
			name: "future expiration is ignored",
			product: domain.Product{
				Stock:          50,
				ExpirationDate: timePtr(now.Add(48 * time.Hour)),
			},
			want: domain.StatusAvailable,
		},
		{
			name:    "default thresholds apply when unset",
			product: domain.Product{Stock: 5},
			want:    domain.StatusLowStock, // default low threshold is 10
		},
		{
			name:    "default critical threshold applies when unset",
			product: domain.Product{Stock: 2},
			want:    domain.StatusCriticalStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.StatusAt(now))
		})
	}
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(40.00)

	credit := domain.LedgerEntry{Kind: domain.KindCredit, Amount: amount}
	assert.True(t, credit.SignedAmount().Equal(amount))

	payment := domain.LedgerEntry{Kind: domain.KindPayment, Amount: amount}
	assert.True(t, payment.SignedAmount().Equal(amount.Neg()))
}

func TestSaleItem_Subtotal(t *testing.T) {
	item := domain.SaleItem{Quantity: 3, UnitPriceAtSale: decimal.NewFromFloat(5.50)}
	assert.True(t, item.Subtotal().Equal(decimal.NewFromFloat(16.50)))
}
