package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/analyzer"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/monitoring"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/shared/id"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

// ListChains lists the distinct chain IDs currently in the store.
func (h *Handlers) ListChains(c *gin.Context) {
	chains := h.store.ChainIDs()

	c.JSON(http.StatusOK, gin.H{
		"chains": chains,
		"count":  len(chains),
	})
}

// GetChainTree reconstructs the call tree for one chain.
func (h *Handlers) GetChainTree(c *gin.Context) {
	tree := h.store.BuildTree(c.Param("id"))
	if tree == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chain not found"})
		return
	}

	c.JSON(http.StatusOK, tree)
}

// ChainReport bundles every analysis for one chain.
type ChainReport struct {
	ReportID     string                    `json:"reportId"`
	ChainID      string                    `json:"chainId"`
	Instance     string                    `json:"instance"`
	GeneratedAt  int64                     `json:"generatedAt"`
	Tree         *trace.Tree               `json:"tree"`
	Terminals    []analyzer.TerminalInfo   `json:"terminals"`
	Completion   analyzer.CompletionReport `json:"completion"`
	CriticalPath []analyzer.PathStep       `json:"criticalPath"`
	Anomalies    analyzer.AnomalyReport    `json:"anomalies"`
}

// GetChainReport runs the full analyzer suite over one chain.
func (h *Handlers) GetChainReport(c *gin.Context) {
	chainID := c.Param("id")

	timer := monitoring.NewTimer(h.metrics, "report")
	tree := h.store.BuildTree(chainID)
	if tree == nil {
		timer.Stop("not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "chain not found"})
		return
	}

	report := ChainReport{
		ReportID:     id.NewReportID().String(),
		ChainID:      chainID,
		Instance:     h.instance,
		GeneratedAt:  time.Now().UnixMilli(),
		Tree:         tree,
		Terminals:    analyzer.TerminalNodes(tree),
		Completion:   analyzer.AnalyzeCompletion(tree),
		CriticalPath: analyzer.CriticalPath(tree),
		Anomalies:    analyzer.DetectAnomalies(tree),
	}
	timer.Stop("success")

	for _, anomaly := range report.Anomalies.Anomalies {
		h.metrics.RecordAnomaly(anomaly.Type, anomaly.Severity)
	}
	h.metrics.RecordReport()

	c.JSON(http.StatusOK, report)
}
