package tasks

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/deal-comb/app/feed"
)

// ConvertFeedTask turns a feed into the plain entries document.
type ConvertFeedTask struct {
	Task
	source *feed.Source

	Document *feed.Document
}

func NewConvertFeedTask(feedURL string, source *feed.Source) *ConvertFeedTask {
	return &ConvertFeedTask{
		Task:   NewTask(TaskTypeConvertFeed, feedURL),
		source: source,
	}
}

func (t *ConvertFeedTask) Execute(ctx context.Context) error {
	document, err := t.source.Convert(ctx, t.FeedURL)
	if err != nil {
		return err
	}
	t.Document = document

	slog.Info("Task completed",
		"type", string(t.Type),
		"feed", t.FeedURL,
		"duration", t.GetDuration(),
		"entries", len(document.Entries))

	return nil
}
