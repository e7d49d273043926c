package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

// RecordRequest is one emission reported by a publisher.
type RecordRequest struct {
	MessageID          string                  `json:"messageId"`
	ChainID            string                  `json:"chainId"`
	Event              string                  `json:"event"`
	PublisherID        string                  `json:"publisherId"`
	SubscriberIDs      []string                `json:"subscriberIds"`
	Timestamp          int64                   `json:"timestamp"`
	ParentMessageID    string                  `json:"parentMessageId"`
	Data               interface{}             `json:"data"`
	ExecutionResults   []trace.ExecutionResult `json:"executionResults"`
	TotalExecutionTime int64                   `json:"totalExecutionTime"`
}

// RecordTrace ingests one trace record. Missing message IDs are minted here
// so the response can echo the ID the record was stored under.
func (h *Handlers) RecordTrace(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Rejected malformed trace payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.MessageID == "" {
		req.MessageID = h.store.GenerateID()
	}
	if req.ChainID == "" {
		req.ChainID = req.MessageID
	}
	if req.Timestamp == 0 {
		req.Timestamp = time.Now().UnixMilli()
	}

	h.store.Record(&trace.Record{
		MessageID:          req.MessageID,
		ChainID:            req.ChainID,
		Event:              req.Event,
		PublisherID:        req.PublisherID,
		SubscriberIDs:      req.SubscriberIDs,
		Timestamp:          req.Timestamp,
		ParentMessageID:    req.ParentMessageID,
		DataSnippet:        trace.Snippet(req.Data),
		ExecutionResults:   req.ExecutionResults,
		TotalExecutionTime: req.TotalExecutionTime,
	})

	c.JSON(http.StatusCreated, gin.H{
		"messageId": req.MessageID,
		"chainId":   req.ChainID,
	})
}

// GetTrace returns one stored record.
func (h *Handlers) GetTrace(c *gin.Context) {
	rec := h.store.Get(c.Param("id"))
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trace not found"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ClearTraces empties the store.
func (h *Handlers) ClearTraces(c *gin.Context) {
	removed := h.store.Status().TotalMessages
	h.store.Destroy()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": removed,
	})
}

// PruneRequest asks for records older than a retention window to be dropped.
type PruneRequest struct {
	OlderThanMS int64 `json:"olderThanMs"`
}

// PruneTraces drops records whose timestamp falls outside the window.
func (h *Handlers) PruneTraces(c *gin.Context) {
	var req PruneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OlderThanMS < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "olderThanMs must be non-negative"})
		return
	}

	cutoff := time.Now().UnixMilli() - req.OlderThanMS
	removed := h.store.ClearOlderThan(cutoff)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": removed,
		"cutoff":  cutoff,
	})
}
