package handlers

import (
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with operator attribution, passing service interfaces
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every mutation records which operator performed it
	v1 := r.Group("/api/v1", middleware.RequireOperator())

	// Delegate route registration to specific handlers, passing required services
	registerProductRoutes(v1, services.Product)
	registerCustomerRoutes(v1, services.Customer, services.Ledger)
	registerLedgerEntryRoutes(v1, services.Ledger)
	registerSaleRoutes(v1, services.Sale)
	registerSupplierRoutes(v1, services.Supplier)
	registerOperatorRoutes(v1, services.Operator)
	registerEventRoutes(v1, services.Notifier)
}
