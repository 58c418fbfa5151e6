package score

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Service validates submissions, allocates record IDs, and answers ranking
// and history queries.
type Service struct {
	counters CounterRepository
	records  RecordRepository
	now      func() time.Time
}

// NewService wires the aggregator to its storage.
func NewService(counters CounterRepository, records RecordRepository) *Service {
	return &Service{
		counters: counters,
		records:  records,
		now:      time.Now,
	}
}

// Submit validates and persists one finished session. The ID is allocated
// before the write; if the write then fails the ID is simply burned — gaps
// are tolerated, duplicates are not.
func (s *Service) Submit(ctx context.Context, owner string, submission Submission) (Record, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return Record{}, fmt.Errorf("%w: owner is required", ErrInvalidSubmission)
	}
	if err := validateField("score", submission.Score); err != nil {
		return Record{}, err
	}
	if err := validateField("wpm", submission.WPM); err != nil {
		return Record{}, err
	}
	if err := validateField("accuracy", submission.Accuracy); err != nil {
		return Record{}, err
	}

	id, err := s.counters.NextID(ctx, ScoreSequence)
	if err != nil {
		return Record{}, err
	}

	record := Record{
		ID:        id,
		Owner:     owner,
		Score:     *submission.Score,
		WPM:       *submission.WPM,
		Accuracy:  *submission.Accuracy,
		CreatedAt: s.now().UTC(),
	}
	if err := s.records.Insert(ctx, record); err != nil {
		return Record{}, err
	}

	return record, nil
}

// Ranking returns the top records across all owners ordered by WPM descending.
// The sort is stable so equal-WPM records keep their storage order; the scan
// is a point-in-time snapshot, not a transaction.
func (s *Service) Ranking(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].WPM > records[j].WPM
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// History returns one owner's records in storage order.
func (s *Service) History(ctx context.Context, owner string) ([]Record, error) {
	return s.records.ListByOwner(ctx, owner)
}

func validateField(name string, value *float64) error {
	if value == nil {
		return fmt.Errorf("%w: %s is required", ErrInvalidSubmission, name)
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidSubmission, name)
	}
	return nil
}
