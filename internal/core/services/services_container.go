package services

import (
	portsrepo "github.com/bodegapos/bodega-backend/internal/core/ports/repositories"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
)

// NewServiceContainer wires all application services with their repositories
// and the change notifier. The notifier may be nil, in which case mutations
// simply go unannounced.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.ChangeNotifier) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Product:  NewProductService(repos.ProductRepo, notifier),
		Customer: NewCustomerService(repos.CustomerRepo, notifier),
		Ledger:   NewLedgerService(repos.LedgerRepo, repos.CustomerRepo, notifier),
		Sale:     NewSaleService(repos.SaleRepo, notifier),
		Supplier: NewSupplierService(repos.SupplierRepo, repos.ProductRepo, notifier),
		Operator: NewOperatorService(repos.OperatorRepo),
		Notifier: notifier,
	}
}
