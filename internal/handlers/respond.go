package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates service-layer failures into HTTP responses.
// Rule errors carry enough detail for the till operator to act on; everything
// unexpected collapses to a generic 500 so internals never leak.
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var stockErr *apperrors.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "insufficient stock",
			"productID":   stockErr.ProductID,
			"productName": stockErr.ProductName,
			"requested":   stockErr.Requested,
			"available":   stockErr.Available,
		})
		return
	}

	var balanceErr *apperrors.ExceedsBalanceError
	if errors.As(err, &balanceErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "payment exceeds outstanding balance",
			"customerID":  balanceErr.CustomerID,
			"requested":   balanceErr.Requested.StringFixed(2),
			"outstanding": balanceErr.Outstanding.StringFixed(2),
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTransient):
		logger.Warn("Transient storage failure", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, retry the request"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// operatorID pulls the acting operator from the request context. The
// RequireOperator middleware guarantees it for the routes that use this.
func operatorID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Operator ID missing from context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing operator identification"})
		return "", false
	}
	return id, true
}
