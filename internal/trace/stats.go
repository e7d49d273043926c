package trace

import (
	"gonum.org/v1/gonum/stat"
)

// Stats aggregates execution statistics over stored records.
type Stats struct {
	TotalMessages        int     `json:"totalMessages"`
	TotalExecutions      int     `json:"totalExecutions"`
	TotalErrors          int     `json:"totalErrors"`
	AverageExecutionTime float64 `json:"averageExecutionTime"`
	MaxExecutionTime     int64   `json:"maxExecutionTime"`
	MinExecutionTime     int64   `json:"minExecutionTime"`
	ErrorRate            float64 `json:"errorRate"`
}

// Stats computes aggregate statistics over all records, or only those whose
// event equals eventFilter when it is non-empty. Zero matching records yield
// a zeroed Stats, never a division error. ErrorRate is a percentage of failed
// executions over total executions.
func (s *Store) Stats(eventFilter string) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	var times []float64
	minSet := false

	for _, messageID := range s.order {
		rec, ok := s.records[messageID]
		if !ok {
			continue
		}
		if eventFilter != "" && rec.Event != eventFilter {
			continue
		}

		stats.TotalMessages++
		times = append(times, float64(rec.TotalExecutionTime))

		if rec.TotalExecutionTime > stats.MaxExecutionTime {
			stats.MaxExecutionTime = rec.TotalExecutionTime
		}
		if !minSet || rec.TotalExecutionTime < stats.MinExecutionTime {
			stats.MinExecutionTime = rec.TotalExecutionTime
			minSet = true
		}

		for _, res := range rec.ExecutionResults {
			stats.TotalExecutions++
			if !res.Success {
				stats.TotalErrors++
			}
		}
	}

	if len(times) > 0 {
		stats.AverageExecutionTime = stat.Mean(times, nil)
	}
	if stats.TotalExecutions > 0 {
		stats.ErrorRate = float64(stats.TotalErrors) / float64(stats.TotalExecutions) * 100
	}
	return stats
}
