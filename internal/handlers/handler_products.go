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

// productHandler handles HTTP requests related to products.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{
		productService: ps,
	}
}

// registerProductRoutes registers routes related to products.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deactivateProduct)
		products.POST("/:id/stock-adjustments", h.adjustStock)
		products.GET("/:id/price-history", h.listPriceHistory)
		products.GET("/code/:code", h.getProductByCode)
	}
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *productHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) getProductByCode(c *gin.Context) {
	product, err := h.productService.GetProductByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *productHandler) updateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) listPriceHistory(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	records, err := h.productService.ListPriceHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondServiceError(c, err, "Failed to list price history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"priceHistory": dto.ToPriceChangeResponses(records)})
}

func (h *productHandler) deactivateProduct(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate product")
		return
	}
	c.Status(http.StatusNoContent)
}
