package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/dto"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerEntryHandler handles HTTP requests addressing individual ledger
// entries (corrections and removals).
type ledgerEntryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerEntryHandler(ls portssvc.LedgerSvcFacade) *ledgerEntryHandler {
	return &ledgerEntryHandler{
		ledgerService: ls,
	}
}

// registerLedgerEntryRoutes registers routes for single ledger entries.
func registerLedgerEntryRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerEntryHandler(ledgerService)

	entries := rg.Group("/ledger-entries")
	{
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.amendEntry)
		entries.DELETE("/:id", h.removeEntry)
	}
}

func (h *ledgerEntryHandler) getEntry(c *gin.Context) {
	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerEntryHandler) amendEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AmendLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for amendEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.AmendEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to amend ledger entry")
		return
	}

	logger.Info("Ledger entry amended", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerEntryHandler) removeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := operatorID(c)
	if !ok {
		return
	}

	if err := h.ledgerService.RemoveEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to remove ledger entry")
		return
	}

	logger.Info("Ledger entry removed", slog.String("entry_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}
