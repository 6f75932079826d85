package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{
		saleService: ss,
	}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.registerSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
	}
}

func (h *saleHandler) registerSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.RegisterSale(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to register sale")
		return
	}

	logger.Info("Sale registered",
		slog.String("sale_id", sale.SaleID),
		slog.String("kind", string(sale.Kind)),
		slog.String("total", sale.Total.StringFixed(2)),
	)
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

func (h *saleHandler) getSale(c *gin.Context) {
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, resp)
}
