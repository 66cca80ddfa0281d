package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/deal-comb/app/report"
)

// ScrapeFeeds runs ScrapeFeedTask for each feed in order. A failed feed is
// recorded in the batch and does not stop the others.
func ScrapeFeeds(ctx context.Context, feedURLs []string, options ScrapeOptions, pipeline *Pipeline) report.Batch {
	batch := report.Batch{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Reports:     []report.Report{},
	}

	for _, feedURL := range feedURLs {
		if ctx.Err() != nil {
			batch.Errors = append(batch.Errors, report.FeedFailure{FeedURL: feedURL, Error: ctx.Err().Error()})
			continue
		}

		task := NewScrapeFeedTask(feedURL, options, pipeline)
		if err := Run(ctx, task); err != nil {
			slog.Error("Feed run failed", "feed", feedURL, "id", task.ID, "error", err)
			batch.Errors = append(batch.Errors, report.FeedFailure{FeedURL: feedURL, Error: err.Error()})
			continue
		}

		batch.Reports = append(batch.Reports, *task.Report)
	}

	return batch
}
