package trace

import (
	"sync"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/logging"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/shared/id"
)

var (
	defaultStore *Store
	defaultOnce  sync.Once
)

// Default returns the process-wide store, created lazily on first use.
// Services should wire an explicit Store instead; this layer is convenience
// sugar for in-process producers.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = NewStore(DefaultConfig(), logging.NewFromEnv())
	})
	return defaultStore
}

// GenerateMessageID mints a message ID without touching the default store.
func GenerateMessageID() string {
	return id.NewMessageID().String()
}

// RecordMessage records an emission on the default store.
func RecordMessage(rec *Record) {
	Default().Record(rec)
}

// GetTrace returns a record from the default store, or nil when absent.
func GetTrace(messageID string) *Record {
	return Default().Get(messageID)
}

// GetTraceTree reconstructs a chain's tree from the default store.
func GetTraceTree(chainID string) *Tree {
	return Default().BuildTree(chainID)
}

// ClearOlderThan prunes the default store and returns the number removed.
func ClearOlderThan(cutoff int64) int {
	return Default().ClearOlderThan(cutoff)
}
