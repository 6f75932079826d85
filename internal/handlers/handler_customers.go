package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to credit customers,
// including their ledger operations.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	ledgerService   portssvc.LedgerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade, ls portssvc.LedgerSvcFacade) *customerHandler {
	return &customerHandler{
		customerService: cs,
		ledgerService:   ls,
	}
}

// registerCustomerRoutes registers customer routes plus the per-customer
// ledger operations that hang off them.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newCustomerHandler(customerService, ledgerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deactivateCustomer)

		customers.GET("/:id/ledger", h.listLedgerEntries)
		customers.POST("/:id/credits", h.recordCredit)
		customers.POST("/:id/payments", h.recordPayment)
		customers.POST("/:id/reconcile", h.reconcile)
	}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *customerHandler) updateCustomer(c *gin.Context) {
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) deactivateCustomer(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate customer")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *customerHandler) listLedgerEntries(c *gin.Context) {
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListEntriesByCustomer(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *customerHandler) recordCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.RecordCredit(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record credit")
		return
	}

	logger.Info("Credit recorded",
		slog.String("customer_id", c.Param("id")),
		slog.String("entry_id", entry.EntryID),
	)
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *customerHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.RecordPayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("customer_id", c.Param("id")),
		slog.String("entry_id", entry.EntryID),
	)
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *customerHandler) reconcile(c *gin.Context) {
	resp, err := h.ledgerService.ReconcileCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to reconcile customer balance")
		return
	}
	c.JSON(http.StatusOK, resp)
}
