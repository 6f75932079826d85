package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// supplierHandler handles HTTP requests related to suppliers and their
// restocking purchases.
type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

func newSupplierHandler(ss portssvc.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{
		supplierService: ss,
	}
}

// registerSupplierRoutes registers supplier and purchase routes.
func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.PUT("/:id", h.updateSupplier)
		suppliers.DELETE("/:id", h.deactivateSupplier)

		suppliers.POST("/:id/purchases", h.createPurchase)
		suppliers.GET("/:id/purchases", h.listPurchases)
	}

	purchases := rg.Group("/purchases")
	{
		purchases.GET("/:id", h.getPurchase)
		purchases.POST("/:id/receive", h.receivePurchase)
		purchases.POST("/:id/cancel", h.cancelPurchase)
	}
}

func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) getSupplier(c *gin.Context) {
	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve supplier")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) listSuppliers(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": dto.ToListSupplierResponse(suppliers)})
}

func (h *supplierHandler) updateSupplier(c *gin.Context) {
	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update supplier")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) deactivateSupplier(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		return
	}

	if err := h.supplierService.DeactivateSupplier(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate supplier")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *supplierHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	purchase, err := h.supplierService.CreatePurchase(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create purchase")
		return
	}

	logger.Info("Purchase created",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("supplier_id", purchase.SupplierID),
	)
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

func (h *supplierHandler) listPurchases(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	purchases, err := h.supplierService.ListPurchasesBySupplier(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondServiceError(c, err, "Failed to list purchases")
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": dto.ToListPurchaseResponse(purchases)})
}

func (h *supplierHandler) getPurchase(c *gin.Context) {
	purchase, err := h.supplierService.GetPurchaseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

func (h *supplierHandler) receivePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	purchase, err := h.supplierService.ReceivePurchase(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to receive purchase")
		return
	}

	logger.Info("Purchase received", slog.String("purchase_id", purchase.PurchaseID))
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

func (h *supplierHandler) cancelPurchase(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		return
	}

	if err := h.supplierService.CancelPurchase(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to cancel purchase")
		return
	}
	c.Status(http.StatusNoContent)
}
