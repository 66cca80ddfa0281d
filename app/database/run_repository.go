package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Fixed-width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunRepository handles database operations for run history
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Insert stores a finished run
func (r *RunRepository) Insert(ctx context.Context, run Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, feed_url, started_at, finished_at, entries, posts_scraped,
			links_found, processed, skipped, success_rate, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.FeedURL,
		run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
		run.Entries, run.PostsScraped, run.LinksFound,
		run.Processed, run.Skipped, run.SuccessRate, run.Error)

	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// List returns the most recent runs, newest first
func (r *RunRepository) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, feed_url, started_at, finished_at, entries, posts_scraped,
		       links_found, processed, skipped, success_rate, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}

// Get returns the run with the given ID, or nil if there is none
func (r *RunRepository) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, feed_url, started_at, finished_at, entries, posts_scraped,
		       links_found, processed, skipped, success_rate, error
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var startedAt, finishedAt string

	err := s.Scan(
		&run.ID, &run.FeedURL, &startedAt, &finishedAt,
		&run.Entries, &run.PostsScraped, &run.LinksFound,
		&run.Processed, &run.Skipped, &run.SuccessRate, &run.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run row: %w", err)
	}

	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at for run %s: %w", run.ID, err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
		return nil, fmt.Errorf("invalid finished_at for run %s: %w", run.ID, err)
	}

	return &run, nil
}
