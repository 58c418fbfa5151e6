package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"typetrivia/internal/score"
)

// Insert writes one score record keyed by (owner, id). IDs are allocated
// uniquely before the write, so each insert lands on a distinct key and no
// cross-request locking is needed.
func (s *Store) Insert(ctx context.Context, record score.Record) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scores (owner, id, score, wpm, accuracy, created_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.Owner,
		record.ID,
		record.Score,
		record.WPM,
		record.Accuracy,
		record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", score.ErrStorageUnavailable, err)
	}
	return nil
}

// ListAll returns every record across all owners in storage order.
func (s *Store) ListAll(ctx context.Context) ([]score.Record, error) {
	return s.listScores(ctx, `SELECT owner, id, score, wpm, accuracy, created_at_unix
		FROM scores ORDER BY owner, id`)
}

// ListByOwner returns one owner's records ordered by id.
func (s *Store) ListByOwner(ctx context.Context, owner string) ([]score.Record, error) {
	return s.listScores(ctx, `SELECT owner, id, score, wpm, accuracy, created_at_unix
		FROM scores WHERE owner = ? ORDER BY id`, owner)
}

func (s *Store) listScores(ctx context.Context, query string, args ...any) ([]score.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	records := make([]score.Record, 0)
	for rows.Next() {
		record, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", score.ErrStorageUnavailable, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", score.ErrStorageUnavailable, err)
	}
	return records, nil
}

func scanScore(rows *sql.Rows) (score.Record, error) {
	var (
		record      score.Record
		createdAtMs int64
	)
	if err := rows.Scan(
		&record.Owner,
		&record.ID,
		&record.Score,
		&record.WPM,
		&record.Accuracy,
		&createdAtMs,
	); err != nil {
		return score.Record{}, err
	}
	record.CreatedAt = time.UnixMilli(createdAtMs).UTC()
	return record, nil
}
