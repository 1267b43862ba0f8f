// Package verify owns the asynchronous job lifecycle: tracked status
// records, the record store, and the two background pipelines (free-text
// verification and on-chain cross-validation).
package verify

import "github.com/hyperagentio/dispute-agent/internal/chain"

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job data bounds enforced at submission time (roughly 100K tokens at
// four characters per token on the upper end).
const (
	MinJobDataLength = 50
	MaxJobDataLength = 400000
)

// Record is the mutable unit of state per tracked job. Exactly one of
// the result fields or the error field is populated once the status
// leaves processing; a terminal record is never mutated again.
type Record struct {
	Status    Status `json:"status"`
	Timestamp int64  `json:"timestamp"` // unix seconds, set at creation

	// Verification result
	Result      string `json:"result,omitempty"`
	WordCount   int    `json:"word_count,omitempty"`
	ReadingTime string `json:"reading_time,omitempty"`

	// Cross-validation result
	AIScore        *int   `json:"ai_score,omitempty"`
	ReputationTxID string `json:"reputation_tx_id,omitempty"`
	EventFound     *bool  `json:"event_found,omitempty"`

	// Populated on cross-validation outcomes; on failure it carries
	// whatever job context had already been retrieved.
	JobDetails *chain.JobDetails `json:"job_details,omitempty"`

	Error string `json:"error,omitempty"`
}
