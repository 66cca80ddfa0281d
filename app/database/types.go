package database

import (
	"context"
	"time"
)

// Run is the history record of one pipeline run over a feed
type Run struct {
	ID           string    `json:"id"`
	FeedURL      string    `json:"feed_url"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Entries      int       `json:"entries"`
	PostsScraped int       `json:"posts_scraped"`
	LinksFound   int       `json:"links_found"`
	Processed    int       `json:"processed"`
	Skipped      int       `json:"skipped"`
	SuccessRate  float64   `json:"success_rate"`
	Error        string    `json:"error,omitempty"`
}

type RunStore interface {
	Insert(ctx context.Context, run Run) error
	List(ctx context.Context, limit int) ([]Run, error)
	Get(ctx context.Context, id string) (*Run, error)
}
