package api

import (
	"sync"

	"github.com/lysyi3m/deal-comb/app/database"
	"github.com/lysyi3m/deal-comb/app/scraper"
	"github.com/lysyi3m/deal-comb/app/tasks"
)

// RunDefaults fill in what a run request leaves out.
type RunDefaults struct {
	FeedURL  string
	MaxPosts int
	Delay    scraper.Delay
}

type RunRequest struct {
	FeedURL  string `json:"feed_url"`
	MaxPosts *int   `json:"max_posts"`
	NoScrape bool   `json:"no_scrape"`
}

type Handler struct {
	pipeline *tasks.Pipeline
	runs     database.RunStore
	defaults RunDefaults

	// runMu keeps a single pipeline run in flight.
	runMu sync.Mutex
}
