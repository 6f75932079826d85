package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// operatorHandler handles HTTP requests related to shop operators.
type operatorHandler struct {
	operatorService portssvc.OperatorSvcFacade
}

func newOperatorHandler(os portssvc.OperatorSvcFacade) *operatorHandler {
	return &operatorHandler{
		operatorService: os,
	}
}

// registerOperatorRoutes registers routes related to operators.
func registerOperatorRoutes(rg *gin.RouterGroup, operatorService portssvc.OperatorSvcFacade) {
	h := newOperatorHandler(operatorService)

	operators := rg.Group("/operators")
	{
		operators.POST("", h.createOperator)
		operators.GET("", h.listOperators)
		operators.GET("/:id", h.getOperator)
		operators.PUT("/:id", h.updateOperator)
		operators.DELETE("/:id", h.deactivateOperator)
	}
}

func (h *operatorHandler) createOperator(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createOperator", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	operator, err := h.operatorService.CreateOperator(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create operator")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOperatorResponse(operator))
}

func (h *operatorHandler) getOperator(c *gin.Context) {
	operator, err := h.operatorService.GetOperatorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve operator")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperatorResponse(operator))
}

func (h *operatorHandler) listOperators(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	operators, err := h.operatorService.ListOperators(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, err, "Failed to list operators")
		return
	}
	c.JSON(http.StatusOK, gin.H{"operators": dto.ToListOperatorResponse(operators)})
}

func (h *operatorHandler) updateOperator(c *gin.Context) {
	var req dto.UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	operator, err := h.operatorService.UpdateOperator(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update operator")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperatorResponse(operator))
}

func (h *operatorHandler) deactivateOperator(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		return
	}

	if err := h.operatorService.DeactivateOperator(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate operator")
		return
	}
	c.Status(http.StatusNoContent)
}
