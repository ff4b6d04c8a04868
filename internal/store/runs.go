package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one bench-harness invocation's worth of swept results.
type Run struct {
	ID         string
	StartedAt  time.Time
	Alphabet   string
	SampleSize int
}

// Result is one (algorithm, n) aggregate recorded for a Run.
type Result struct {
	RunID       string
	Algorithm   string
	N           int
	MeanSize    float64
	MeanSeconds float64
}

// CreateRun inserts a new run row and returns its generated ID.
func (s *Store) CreateRun(ctx context.Context, alphabet string, sampleSize int) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, alphabet, sample_size) VALUES (?, ?, ?, ?)`,
		id, time.Now().Unix(), alphabet, sampleSize,
	)
	if err != nil {
		return "", wrapDBError(err)
	}
	return id, nil
}

// SaveResult records one (algorithm, n) aggregate for runID.
func (s *Store) SaveResult(ctx context.Context, runID, algorithm string, n int, meanSize, meanSeconds float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO results (run_id, algorithm, n, mean_size, mean_seconds) VALUES (?, ?, ?, ?, ?)`,
		runID, algorithm, n, meanSize, meanSeconds,
	)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// ListRuns returns every stored run, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, alphabet, sample_size FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var startedAt int64
		if err := rows.Scan(&r.ID, &startedAt, &r.Alphabet, &r.SampleSize); err != nil {
			return nil, wrapDBError(err)
		}
		r.StartedAt = time.Unix(startedAt, 0)
		out = append(out, r)
	}
	return out, nil
}

// GetRun returns the run with the given ID and its recorded results.
func (s *Store) GetRun(ctx context.Context, id string) (Run, []Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, alphabet, sample_size FROM runs WHERE id = ?`, id)

	var r Run
	var startedAt int64
	if err := row.Scan(&r.ID, &startedAt, &r.Alphabet, &r.SampleSize); err != nil {
		return Run{}, nil, wrapDBError(err)
	}
	r.StartedAt = time.Unix(startedAt, 0)

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, algorithm, n, mean_size, mean_seconds FROM results WHERE run_id = ? ORDER BY algorithm, n`, id)
	if err != nil {
		return Run{}, nil, wrapDBError(err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.RunID, &res.Algorithm, &res.N, &res.MeanSize, &res.MeanSeconds); err != nil {
			return Run{}, nil, wrapDBError(err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("reading results: %w", wrapDBError(err))
	}
	return r, results, nil
}
