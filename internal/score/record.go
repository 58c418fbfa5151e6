// Package score implements the server-side score aggregator: durable
// sequential identifiers, per-owner score records, and the ranking projection.
package score

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidSubmission marks a submission with missing or non-finite fields.
	ErrInvalidSubmission = errors.New("invalid score submission")
	// ErrStorageUnavailable wraps counter or record-store failures. Callers may
	// retry; the aggregator itself never does.
	ErrStorageUnavailable = errors.New("score storage unavailable")
)

// ScoreSequence is the counter name backing score record IDs.
const ScoreSequence = "scores"

// DefaultRankingLimit caps the ranking when the caller does not ask otherwise.
const DefaultRankingLimit = 10

// Record is one persisted session result. Records are immutable after
// creation; IDs are unique, monotonically increasing, and never reused.
type Record struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"username"`
	Score     float64   `json:"score"`
	WPM       float64   `json:"wpm"`
	Accuracy  float64   `json:"accuracy"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is the wire payload for a finished session. Pointers distinguish
// an absent field from a legitimate zero.
type Submission struct {
	Score    *float64 `json:"score"`
	WPM      *float64 `json:"wpm"`
	Accuracy *float64 `json:"accuracy"`
}

// CounterRepository allocates values from named sequences. NextID must be
// atomic: two concurrent callers never observe the same value.
type CounterRepository interface {
	NextID(ctx context.Context, sequence string) (uint64, error)
}

// RecordRepository stores score records keyed by (owner, id).
type RecordRepository interface {
	Insert(ctx context.Context, record Record) error
	ListAll(ctx context.Context) ([]Record, error)
	ListByOwner(ctx context.Context, owner string) ([]Record, error)
}
