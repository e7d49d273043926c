package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/logging"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/monitoring"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

const serviceVersion = "1.0.0"

// Handlers contains all HTTP handlers for the dev panel API.
type Handlers struct {
	store    *trace.Store
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	instance string
}

// NewHandlers creates a new handler set. Each process mints a random
// instance tag so a panel talking to several tracers can tell them apart.
func NewHandlers(store *trace.Store, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		store:    store,
		metrics:  metrics,
		logger:   logger,
		instance: uuid.NewString(),
	}
}

// Instance returns the process tag minted at startup.
func (h *Handlers) Instance() string {
	return h.instance
}

// Root handles the banner route.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "online",
		"service":  "message-tracer",
		"version":  serviceVersion,
		"instance": h.instance,
	})
}

// Health handles the liveness check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  h.store.Status(),
	})
}

// Status reports store occupancy and request-level health for the panel.
func (h *Handlers) Status(c *gin.Context) {
	snap := h.metrics.GetSnapshot()

	var avgLatencyMS float64
	if snap.RequestCount > 0 {
		avgLatencyMS = snap.TotalDuration / float64(snap.RequestCount) * 1000
	}
	var errorRate float64
	if snap.TotalRequests > 0 {
		errorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}

	c.JSON(http.StatusOK, gin.H{
		"instance": h.instance,
		"version":  serviceVersion,
		"store":    h.store.Status(),
		"summary": gin.H{
			"totalRequests":    snap.TotalRequests,
			"totalErrors":      snap.TotalErrors,
			"averageLatencyMs": avgLatencyMS,
			"errorRate":        errorRate,
			"messagesRecorded": snap.MessagesRecorded,
			"uptimeSeconds":    h.metrics.UptimeSeconds(),
		},
	})
}

// GetStats aggregates execution timings over all stored records, optionally
// filtered by exact event name.
func (h *Handlers) GetStats(c *gin.Context) {
	stats := h.store.Stats(c.Query("event"))
	c.JSON(http.StatusOK, stats)
}
