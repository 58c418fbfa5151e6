package store

import (
	"context"
	"fmt"

	"typetrivia/internal/score"
)

// NextID atomically increments the named sequence and returns the new value.
// The upsert is a single statement, so concurrent callers serialize inside
// SQLite and can never observe the same value; a read-increment-write cycle
// would race here.
func (s *Store) NextID(ctx context.Context, sequence string) (uint64, error) {
	var value uint64
	err := s.db.QueryRowContext(
		ctx,
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET value = value + 1
		 RETURNING value`,
		sequence,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", score.ErrStorageUnavailable, err)
	}
	return value, nil
}
