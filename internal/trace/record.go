package trace

// UnknownEvent is the sentinel filled in when a producer omits the event name.
const UnknownEvent = "unknown:event:occurred"

// ExecutionResult captures one subscriber's handling of an emission.
type ExecutionResult struct {
	SubscriberID  string `json:"subscriberId"`
	Success       bool   `json:"success"`
	ExecutionTime int64  `json:"executionTime"`
	Error         string `json:"error,omitempty"`
}

// Record is one event emission as submitted by a producer. Records are
// immutable once stored; duplicate message IDs overwrite in place.
type Record struct {
	MessageID          string            `json:"messageId"`
	ChainID            string            `json:"chainId"`
	Event              string            `json:"event"`
	PublisherID        string            `json:"publisherId"`
	SubscriberIDs      []string          `json:"subscriberIds"`
	Timestamp          int64             `json:"timestamp"`
	ParentMessageID    string            `json:"parentMessageId,omitempty"`
	DataSnippet        string            `json:"dataSnippet,omitempty"`
	ExecutionResults   []ExecutionResult `json:"executionResults"`
	TotalExecutionTime int64             `json:"totalExecutionTime"`
}

// Clone returns a deep copy. Mutating the copy never affects the original.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.SubscriberIDs = append([]string{}, r.SubscriberIDs...)
	clone.ExecutionResults = append([]ExecutionResult{}, r.ExecutionResults...)
	return &clone
}

// normalize fills missing optional fields with safe defaults. Must only be
// called on the store's private copy.
func (r *Record) normalize() {
	if r.ChainID == "" {
		r.ChainID = r.MessageID
	}
	if r.Event == "" {
		r.Event = UnknownEvent
	}
	if r.SubscriberIDs == nil {
		r.SubscriberIDs = []string{}
	}
	if r.ExecutionResults == nil {
		r.ExecutionResults = []ExecutionResult{}
	}
	r.DataSnippet = truncateSnippet(r.DataSnippet)
}
