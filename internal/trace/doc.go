// Package trace provides the bounded in-memory store for message call chains.
//
// Producers on the pub-sub bus record one flat Record per event emission;
// the store keys records by message ID, groups them by chain ID, and
// reconstructs a call tree for any chain on demand. Analysis of the
// reconstructed tree lives in the analyzer package.
//
// Components:
//   - Record: one emission as submitted by a producer
//   - Store: bounded map of message ID to Record with FIFO eviction
//   - Tree/Node: per-chain call tree derived on demand
//   - Stats: aggregate execution statistics, optionally event-filtered
//
// Behavior notes:
//   - The store never fails on misuse: malformed records are dropped with a
//     warning, absent lookups return nil, and statistics over zero records
//     return a zeroed value.
//   - Eviction is strictly insertion-ordered (FIFO), not access-ordered.
//     Overwriting a record keeps its original insertion slot.
//   - Records whose parentMessageId never resolves inside their chain are
//     excluded from tree views but stay queryable via Get.
//
// Example Usage:
//
//	store := trace.NewStore(trace.DefaultConfig(), logger)
//	store.Record(&trace.Record{
//		MessageID:   store.GenerateID(),
//		ChainID:     "chain_abc",
//		Event:       "pdf:load:requested",
//		PublisherID: "pdf-manager",
//		Timestamp:   time.Now().UnixMilli(),
//	})
//	tree := store.BuildTree("chain_abc")
package trace
