package trace

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/logging"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/monitoring"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/shared/id"
)

// Config bounds the store.
type Config struct {
	// MaxTraceSize caps the number of held records; exceeding it evicts the
	// earliest-inserted record (FIFO, not LRU).
	MaxTraceSize int
	// EnablePerformanceTracking is accepted for forward compatibility and
	// currently gates nothing.
	EnablePerformanceTracking bool
}

// DefaultConfig returns the standard store bounds.
func DefaultConfig() Config {
	return Config{
		MaxTraceSize:              1000,
		EnablePerformanceTracking: true,
	}
}

// Store holds trace records keyed by message ID, bounded by Config.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record // Protected by mu
	order   []string           // Insertion order of live message IDs, protected by mu
	chains  map[string]int     // Chain ID refcounts, protected by mu
	cfg     Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// Status is an introspection snapshot of the store.
type Status struct {
	TotalMessages int `json:"totalMessages"`
	MaxTraceSize  int `json:"maxTraceSize"`
	UniqueChains  int `json:"uniqueChains"`
}

// NewStore creates a trace store.
func NewStore(cfg Config, logger *logging.Logger) *Store {
	if cfg.MaxTraceSize <= 0 {
		cfg.MaxTraceSize = DefaultConfig().MaxTraceSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		records: make(map[string]*Record),
		chains:  make(map[string]int),
		cfg:     cfg,
		logger:  logger,
	}
}

// WithMetrics adds metrics tracking to the store.
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.metrics = metrics
	return s
}

// GenerateID mints a message ID for producers that let the store assign IDs.
func (s *Store) GenerateID() string {
	return id.NewMessageID().String()
}

// Record stores one emission. Records without a message ID are dropped with a
// warning; the store never fails. Duplicate message IDs overwrite in place and
// keep their original insertion slot. When the insert pushes the store past
// MaxTraceSize, the earliest-inserted record is evicted.
func (s *Store) Record(rec *Record) {
	if rec == nil || rec.MessageID == "" {
		s.logger.Warn("Dropping trace record without message id")
		if s.metrics != nil {
			s.metrics.RecordDropped()
		}
		return
	}

	stored := rec.Clone()
	stored.normalize()

	s.mu.Lock()
	if prev, ok := s.records[stored.MessageID]; ok {
		s.decChainLocked(prev.ChainID)
	} else {
		s.order = append(s.order, stored.MessageID)
	}
	s.records[stored.MessageID] = stored
	s.chains[stored.ChainID]++

	var evicted string
	if len(s.records) > s.cfg.MaxTraceSize {
		evicted = s.evictOldestLocked()
	}
	size := len(s.records)
	chains := len(s.chains)
	s.mu.Unlock()

	if evicted != "" {
		s.logger.Debug("Evicted oldest trace record",
			zap.String("messageId", evicted),
			zap.Int("maxTraceSize", s.cfg.MaxTraceSize))
	}
	if s.metrics != nil {
		s.metrics.RecordMessage()
		if evicted != "" {
			s.metrics.RecordEvicted()
		}
		s.metrics.SetStoreSize(size)
		s.metrics.SetChainsTracked(chains)
	}
}

// Get returns a defensive copy of the record, or nil when absent.
func (s *Store) Get(messageID string) *Record {
	s.mu.RLock()
	rec, ok := s.records[messageID]
	s.mu.RUnlock()

	if !ok {
		s.logger.Warn("Trace record not found", zap.String("messageId", messageID))
		return nil
	}
	return rec.Clone()
}

// ClearOlderThan deletes every record with Timestamp < cutoff and returns the
// number deleted.
func (s *Store) ClearOlderThan(cutoff int64) int {
	s.mu.Lock()
	removed := 0
	kept := s.order[:0]
	for _, messageID := range s.order {
		rec, ok := s.records[messageID]
		if !ok {
			continue
		}
		if rec.Timestamp < cutoff {
			delete(s.records, messageID)
			s.decChainLocked(rec.ChainID)
			removed++
			continue
		}
		kept = append(kept, messageID)
	}
	s.order = kept
	size := len(s.records)
	chains := len(s.chains)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info("Pruned trace records",
			zap.Int("removed", removed),
			zap.Int64("cutoff", cutoff))
	}
	if s.metrics != nil {
		s.metrics.RecordPruned(removed)
		s.metrics.SetStoreSize(size)
		s.metrics.SetChainsTracked(chains)
	}
	return removed
}

// ChainIDs returns the distinct chain IDs currently held, sorted.
func (s *Store) ChainIDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.chains))
	for chainID := range s.chains {
		ids = append(ids, chainID)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Status returns an introspection snapshot.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		TotalMessages: len(s.records),
		MaxTraceSize:  s.cfg.MaxTraceSize,
		UniqueChains:  len(s.chains),
	}
}

// Destroy clears all records. Idempotent.
func (s *Store) Destroy() {
	s.mu.Lock()
	removed := len(s.records)
	s.records = make(map[string]*Record)
	s.order = nil
	s.chains = make(map[string]int)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info("Trace store destroyed", zap.Int("removed", removed))
	}
	if s.metrics != nil {
		s.metrics.SetStoreSize(0)
		s.metrics.SetChainsTracked(0)
	}
}

// evictOldestLocked removes the earliest-inserted live record. Must hold mu.
func (s *Store) evictOldestLocked() string {
	for len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		if rec, ok := s.records[oldest]; ok {
			delete(s.records, oldest)
			s.decChainLocked(rec.ChainID)
			return oldest
		}
	}
	return ""
}

// decChainLocked drops one reference to a chain. Must hold mu.
func (s *Store) decChainLocked(chainID string) {
	if n, ok := s.chains[chainID]; ok {
		if n <= 1 {
			delete(s.chains, chainID)
		} else {
			s.chains[chainID] = n - 1
		}
	}
}
