package trace

import (
	"sort"

	"go.uber.org/zap"
)

// Tree is the call tree reconstructed for one chain. Trees are transient,
// computed fresh on every BuildTree call, and owned by the caller.
type Tree struct {
	ChainID   string `json:"chainId"`
	StartTime int64  `json:"startTime"`
	// TotalDuration spans from the first-recorded entry to the end of the
	// last-recorded one. Producers that record out of timestamp order can
	// make it negative; that is a data quality signal, not a store bug.
	TotalDuration int64   `json:"totalDuration"`
	Roots         []*Node `json:"roots"`
}

// Node is one emission inside a Tree.
type Node struct {
	MessageID     string            `json:"messageId"`
	Event         string            `json:"event"`
	PublisherID   string            `json:"publisherId"`
	Timestamp     int64             `json:"timestamp"`
	ExecutionTime int64             `json:"executionTime"`
	SubscriberIDs []string          `json:"subscriberIds"`
	Children      []*Node           `json:"children"`
	FailedResults []ExecutionResult `json:"failedResults"`
	HasErrors     bool              `json:"hasErrors"`
}

// BuildTree reconstructs the call tree for a chain, or returns nil with a
// warning when the chain has no records. The matching records are snapshotted
// atomically, so a concurrent insert or eviction is either fully visible or
// not at all.
func (s *Store) BuildTree(chainID string) *Tree {
	s.mu.RLock()
	var records []*Record
	for _, messageID := range s.order {
		if rec, ok := s.records[messageID]; ok && rec.ChainID == chainID {
			records = append(records, rec)
		}
	}
	s.mu.RUnlock()

	if len(records) == 0 {
		s.logger.Warn("No trace records for chain", zap.String("chainId", chainID))
		return nil
	}

	tree := buildTree(chainID, records)
	if s.metrics != nil {
		s.metrics.RecordTreeBuilt()
	}
	return tree
}

// buildTree assembles a Tree from one chain's records, given in recording
// order. Stored records are immutable, so reading them without the lock is
// safe.
func buildTree(chainID string, records []*Record) *Tree {
	// The time span runs from the first-recorded to the last-recorded entry.
	// When producers record out of timestamp order the duration can go
	// negative; that is surfaced as-is.
	first := records[0]
	last := records[len(records)-1]

	sorted := append([]*Record{}, records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	// Arena pass: one node per record, then resolve parent edges.
	nodes := make(map[string]*Node, len(sorted))
	for _, rec := range sorted {
		nodes[rec.MessageID] = newNode(rec)
	}

	tree := &Tree{ChainID: chainID, Roots: []*Node{}}
	for _, rec := range sorted {
		node := nodes[rec.MessageID]
		if rec.ParentMessageID == "" {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		if parent, ok := nodes[rec.ParentMessageID]; ok {
			parent.Children = append(parent.Children, node)
		}
		// A record whose parent never resolves inside the chain is dropped
		// from the tree. It stays queryable through Get.
	}

	tree.StartTime = first.Timestamp
	tree.TotalDuration = last.Timestamp + last.TotalExecutionTime - first.Timestamp
	return tree
}

// newNode projects a Record into a tree node, splitting out failed results.
func newNode(rec *Record) *Node {
	node := &Node{
		MessageID:     rec.MessageID,
		Event:         rec.Event,
		PublisherID:   rec.PublisherID,
		Timestamp:     rec.Timestamp,
		ExecutionTime: rec.TotalExecutionTime,
		SubscriberIDs: append([]string{}, rec.SubscriberIDs...),
		Children:      []*Node{},
		FailedResults: []ExecutionResult{},
	}
	for _, res := range rec.ExecutionResults {
		if !res.Success {
			node.FailedResults = append(node.FailedResults, res)
		}
	}
	node.HasErrors = len(node.FailedResults) > 0
	return node
}
