package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/bodegapos/bodega-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler streams change notifications to clients over SSE. Events are
// hints to re-fetch, delivered at most once; clients reconnect and re-fetch
// after any gap.
type eventHandler struct {
	notifier portssvc.ChangeNotifier
}

func newEventHandler(n portssvc.ChangeNotifier) *eventHandler {
	return &eventHandler{
		notifier: n,
	}
}

// registerEventRoutes registers the change event stream route.
func registerEventRoutes(rg *gin.RouterGroup, notifier portssvc.ChangeNotifier) {
	h := newEventHandler(notifier)
	rg.GET("/events", h.streamEvents)
}

func (h *eventHandler) streamEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event streaming is not enabled"})
		return
	}

	topic := domain.Topic(c.Query("topic"))
	if !domain.ValidTopic(topic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topic"})
		return
	}

	events, cancel, err := h.notifier.Subscribe(c.Request.Context(), topic)
	if err != nil {
		logger.Error("Failed to subscribe for events",
			slog.String("topic", string(topic)),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event streaming temporarily unavailable"})
		return
	}
	defer cancel()

	logger.Info("Event stream opened", slog.String("topic", string(topic)))
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	logger.Info("Event stream closed", slog.String("topic", string(topic)))
}
