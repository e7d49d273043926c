package analyzer

import (
	"fmt"
	"strings"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

// Anomaly types.
const (
	AnomalyPotentialLoop   = "potential_loop"
	AnomalySlowExecution   = "slow_execution"
	AnomalyMissingResponse = "missing_response"
)

// Severity levels.
const (
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Detection thresholds.
const (
	loopOccurrences     = 3    // more than this many repeats flags a loop
	loopOccurrencesHigh = 10   // more than this escalates to high
	slowExecutionMS     = 1000 // execution above this flags slow
	slowExecutionHighMS = 5000 // above this escalates to high
)

// Anomaly is one detected irregularity in a chain.
type Anomaly struct {
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	Event         string `json:"event"`
	MessageID     string `json:"messageId,omitempty"`
	Count         int    `json:"count,omitempty"`
	ExecutionTime int64  `json:"executionTime,omitempty"`
	Description   string `json:"description"`
}

// AnomalyReport aggregates all detectors over one tree.
type AnomalyReport struct {
	HasAnomalies bool           `json:"hasAnomalies"`
	AnomalyCount int            `json:"anomalyCount"`
	Anomalies    []Anomaly      `json:"anomalies"`
	ByType       map[string]int `json:"byType"`
}

// DetectAnomalies runs three independent detectors over the tree's nodes:
// event repetition (potential loops), slow executions, and requests that
// never got a success or failure response. A node can appear in more than
// one anomaly.
func DetectAnomalies(tree *trace.Tree) AnomalyReport {
	report := AnomalyReport{
		Anomalies: []Anomaly{},
		ByType: map[string]int{
			AnomalyPotentialLoop:   0,
			AnomalySlowExecution:   0,
			AnomalyMissingResponse: 0,
		},
	}

	nodes := AllNodes(tree)
	report.Anomalies = append(report.Anomalies, detectLoops(nodes)...)
	report.Anomalies = append(report.Anomalies, detectSlowExecutions(nodes)...)
	report.Anomalies = append(report.Anomalies, detectMissingResponses(nodes)...)

	for _, anomaly := range report.Anomalies {
		report.ByType[anomaly.Type]++
	}
	report.AnomalyCount = len(report.Anomalies)
	report.HasAnomalies = report.AnomalyCount > 0
	return report
}

// detectLoops flags event values repeated across the whole tree, one anomaly
// per offending event value in first-appearance order.
func detectLoops(nodes []*trace.Node) []Anomaly {
	counts := make(map[string]int, len(nodes))
	for _, node := range nodes {
		counts[node.Event]++
	}

	var anomalies []Anomaly
	seen := make(map[string]bool)
	for _, node := range nodes {
		if seen[node.Event] {
			continue
		}
		seen[node.Event] = true

		count := counts[node.Event]
		if count <= loopOccurrences {
			continue
		}
		severity := SeverityMedium
		if count > loopOccurrencesHigh {
			severity = SeverityHigh
		}
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyPotentialLoop,
			Severity:    severity,
			Event:       node.Event,
			Count:       count,
			Description: fmt.Sprintf("event %q fired %d times in one chain", node.Event, count),
		})
	}
	return anomalies
}

// detectSlowExecutions flags nodes whose execution exceeded the slow
// threshold.
func detectSlowExecutions(nodes []*trace.Node) []Anomaly {
	var anomalies []Anomaly
	for _, node := range nodes {
		if node.ExecutionTime <= slowExecutionMS {
			continue
		}
		severity := SeverityMedium
		if node.ExecutionTime > slowExecutionHighMS {
			severity = SeverityHigh
		}
		anomalies = append(anomalies, Anomaly{
			Type:          AnomalySlowExecution,
			Severity:      severity,
			Event:         node.Event,
			MessageID:     node.MessageID,
			ExecutionTime: node.ExecutionTime,
			Description:   fmt.Sprintf("execution took %dms", node.ExecutionTime),
		})
	}
	return anomalies
}

// detectMissingResponses flags "requested" events with no other node whose
// event contains the request's base name together with success or failed.
func detectMissingResponses(nodes []*trace.Node) []Anomaly {
	var anomalies []Anomaly
	for _, node := range nodes {
		if !strings.Contains(node.Event, "requested") {
			continue
		}
		baseName := strings.Replace(node.Event, "requested", "", 1)

		answered := false
		for _, other := range nodes {
			if other == node {
				continue
			}
			if strings.Contains(other.Event, baseName) &&
				(strings.Contains(other.Event, "success") || strings.Contains(other.Event, "failed")) {
				answered = true
				break
			}
		}
		if answered {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyMissingResponse,
			Severity:    SeverityHigh,
			Event:       node.Event,
			MessageID:   node.MessageID,
			Description: fmt.Sprintf("request %q has no matching success or failure", node.Event),
		})
	}
	return anomalies
}
