package analyzer

import (
	"fmt"
	"strings"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

// terminalStatuses is the fixed vocabulary for the third event segment.
var terminalStatuses = map[string]struct{}{
	"success":   {},
	"completed": {},
	"complete":  {},
	"done":      {},
	"failed":    {},
	"error":     {},
	"cancelled": {},
	"timeout":   {},
	"finished":  {},
	"resolved":  {},
	"rejected":  {},
}

// IsTerminalEvent reports whether an event names a terminal status. The event
// must have exactly three colon-separated segments and its third segment,
// lower-cased, must be in the terminal vocabulary.
func IsTerminalEvent(event string) bool {
	parts := strings.Split(event, ":")
	if len(parts) != 3 {
		return false
	}
	_, ok := terminalStatuses[strings.ToLower(parts[2])]
	return ok
}

// TerminalInfo describes one terminal node.
type TerminalInfo struct {
	MessageID string `json:"messageId"`
	Event     string `json:"event"`
	// Structural marks a node with no children; Semantic marks a terminal
	// event name. A node can be both, and the flags are independent.
	Structural bool `json:"structural"`
	Semantic   bool `json:"semantic"`
	Depth      int  `json:"depth"`
}

// TerminalNodes walks the tree in pre-order and returns every node that is a
// structural terminal (no children), a semantic terminal (terminal event), or
// both. Depth is the node's distance from its root.
func TerminalNodes(tree *trace.Tree) []TerminalInfo {
	var terminals []TerminalInfo
	for _, node := range AllNodes(tree) {
		structural := len(node.Children) == 0
		semantic := IsTerminalEvent(node.Event)
		if !structural && !semantic {
			continue
		}
		terminals = append(terminals, TerminalInfo{
			MessageID:  node.MessageID,
			Event:      node.Event,
			Structural: structural,
			Semantic:   semantic,
			Depth:      nodeDepth(tree, node),
		})
	}
	return terminals
}

// IncompleteNode flags a childless node that never reached a terminal status.
type IncompleteNode struct {
	MessageID string `json:"messageId"`
	Event     string `json:"event"`
	Hint      string `json:"hint"`
}

// CompletionReport summarizes how much of a chain ran to a terminal status.
type CompletionReport struct {
	TotalNodes      int              `json:"totalNodes"`
	TerminalNodes   int              `json:"terminalNodes"`
	SuccessCount    int              `json:"successCount"`
	FailureCount    int              `json:"failureCount"`
	IncompleteNodes []IncompleteNode `json:"incompleteNodes"`
	IsComplete      bool             `json:"isComplete"`
	CompletionRate  string           `json:"completionRate"`
}

// AnalyzeCompletion classifies the tree's terminals into successes and
// failures and lists the leaves that never concluded. Success and failure
// counting is substring-based on purpose, looser than IsTerminalEvent.
func AnalyzeCompletion(tree *trace.Tree) CompletionReport {
	report := CompletionReport{
		IncompleteNodes: []IncompleteNode{},
		CompletionRate:  "0.00%",
	}

	nodes := AllNodes(tree)
	terminals := TerminalNodes(tree)
	report.TotalNodes = len(nodes)
	report.TerminalNodes = len(terminals)

	for _, term := range terminals {
		if containsAny(term.Event, "success", "completed", "done") {
			report.SuccessCount++
		}
		if containsAny(term.Event, "failed", "error", "rejected") {
			report.FailureCount++
		}
	}

	for _, node := range nodes {
		if len(node.Children) == 0 && !IsTerminalEvent(node.Event) {
			report.IncompleteNodes = append(report.IncompleteNodes, IncompleteNode{
				MessageID: node.MessageID,
				Event:     node.Event,
				Hint:      fmt.Sprintf("event %q never reached a terminal status", node.Event),
			})
		}
	}

	report.IsComplete = len(report.IncompleteNodes) == 0
	if report.TotalNodes > 0 {
		rate := float64(report.TerminalNodes) / float64(report.TotalNodes) * 100
		report.CompletionRate = fmt.Sprintf("%.2f%%", rate)
	}
	return report
}

// PathStep is one hop on the critical path.
type PathStep struct {
	MessageID     string `json:"messageId"`
	Event         string `json:"event"`
	ExecutionTime int64  `json:"executionTime"`
}

// CriticalPath returns the longest root-to-leaf path measured in node count,
// not cumulative duration. A longer path replaces the best; ties keep the
// first found in root, then child, iteration order.
func CriticalPath(tree *trace.Tree) []PathStep {
	if tree == nil {
		return nil
	}

	var best []*trace.Node
	var walk func(node *trace.Node, path []*trace.Node)
	walk = func(node *trace.Node, path []*trace.Node) {
		path = append(path, node)
		if len(node.Children) == 0 {
			if len(path) > len(best) {
				best = append([]*trace.Node{}, path...)
			}
			return
		}
		for _, child := range node.Children {
			walk(child, path)
		}
	}
	for _, root := range tree.Roots {
		walk(root, nil)
	}

	steps := make([]PathStep, len(best))
	for i, node := range best {
		steps[i] = PathStep{
			MessageID:     node.MessageID,
			Event:         node.Event,
			ExecutionTime: node.ExecutionTime,
		}
	}
	return steps
}

// AllNodes flattens the tree in pre-order: each node before its children,
// roots in order.
func AllNodes(tree *trace.Tree) []*trace.Node {
	if tree == nil {
		return nil
	}
	var nodes []*trace.Node
	for _, root := range tree.Roots {
		nodes = appendPreOrder(nodes, root)
	}
	return nodes
}

func appendPreOrder(nodes []*trace.Node, node *trace.Node) []*trace.Node {
	if node == nil {
		return nodes
	}
	nodes = append(nodes, node)
	for _, child := range node.Children {
		nodes = appendPreOrder(nodes, child)
	}
	return nodes
}

// nodeDepth finds a node's distance from its root with a fresh search, root
// depth 0. Returns -1 for nodes not reachable in the tree.
func nodeDepth(tree *trace.Tree, target *trace.Node) int {
	for _, root := range tree.Roots {
		if d := depthFrom(root, target, 0); d >= 0 {
			return d
		}
	}
	return -1
}

func depthFrom(node, target *trace.Node, depth int) int {
	if node == target {
		return depth
	}
	for _, child := range node.Children {
		if d := depthFrom(child, target, depth+1); d >= 0 {
			return d
		}
	}
	return -1
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
