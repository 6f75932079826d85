package pgsql

import (
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool, productRepo)
	supplierRepo := newPgxSupplierRepository(dbPool, productRepo)
	operatorRepo := newPgxOperatorRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:  productRepo,
		CustomerRepo: customerRepo,
		LedgerRepo:   ledgerRepo,
		SaleRepo:     saleRepo,
		SupplierRepo: supplierRepo,
		OperatorRepo: operatorRepo,
	}
}
