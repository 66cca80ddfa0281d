package tasks

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/deal-comb/app/database"
	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/links"
	"github.com/lysyi3m/deal-comb/app/report"
	"github.com/lysyi3m/deal-comb/app/resolver"
	"github.com/lysyi3m/deal-comb/app/scraper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/lysyi3m/deal-comb/app/tasks")

type ScrapeOptions struct {
	MaxPosts int
	Delay    scraper.Delay
	// NoScrape processes the feed entries' own links instead of scraping posts.
	NoScrape bool
}

// ScrapeFeedTask runs the full pipeline for one feed: feed, posts, merchant
// links, affiliate processing.
type ScrapeFeedTask struct {
	Task
	options  ScrapeOptions
	pipeline *Pipeline

	Report *report.Report
}

func NewScrapeFeedTask(feedURL string, options ScrapeOptions, pipeline *Pipeline) *ScrapeFeedTask {
	return &ScrapeFeedTask{
		Task:     NewTask(TaskTypeScrapeFeed, feedURL),
		options:  options,
		pipeline: pipeline,
	}
}

func (t *ScrapeFeedTask) Execute(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ScrapeFeed")
	defer span.End()
	span.SetAttributes(
		attribute.String("feed.url", t.FeedURL),
		attribute.String("run.id", t.ID),
	)

	startedAt := time.Now().UTC()

	err := t.execute(ctx)

	run := t.runRecord(startedAt, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if t.pipeline.Metrics != nil {
		t.pipeline.Metrics.ObserveRun(err != nil, t.GetDuration())
	}
	t.saveRun(ctx, run)

	return err
}

func (t *ScrapeFeedTask) execute(ctx context.Context) error {
	_, entries, err := t.pipeline.Source.Run(ctx, t.FeedURL)
	if err != nil {
		return err
	}

	processor := t.pipeline.NewProcessor()

	var posts []scraper.Post
	var productLinks []report.ProductLink

	if t.options.NoScrape {
		productLinks = t.processEntries(ctx, processor, entries)
	} else {
		posts = t.scrapePosts(ctx, entries)
		productLinks = t.processPosts(ctx, processor, entries, posts)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}

	stats := processor.Stats()
	blogPosts := report.NewBlogPosts(entries, posts)

	t.Report = &report.Report{
		RunID:     t.ID,
		FeedURL:   t.FeedURL,
		ScrapedAt: time.Now().UTC().Format(time.RFC3339),
		Stats: report.ScrapingStats{
			RSSEntries:              len(entries),
			PostsScraped:            len(posts),
			MerchantLinksFound:      countMerchantLinks(posts),
			AffiliateLinksProcessed: stats.Processed,
			AffiliateSuccessRate:    stats.SuccessRate,
		},
		BlogPosts:         blogPosts,
		ProductLinks:      productLinks,
		ProcessingSummary: report.NewProcessingSummary(blogPosts, productLinks),
		Summary:           stats,
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"feed", t.FeedURL,
		"duration", t.GetDuration(),
		"entries", len(entries),
		"posts", len(posts),
		"links", len(productLinks),
		"processed", stats.Processed,
		"skipped", stats.Skipped)

	return nil
}

func (t *ScrapeFeedTask) scrapePosts(ctx context.Context, entries []feed.Entry) []scraper.Post {
	limit := min(max(t.options.MaxPosts, 0), len(entries))

	postURLs := make([]string, 0, limit)
	for _, entry := range entries[:limit] {
		postURLs = append(postURLs, entry.Link)
	}

	slog.Info("Scraping posts", "feed", t.FeedURL, "posts", len(postURLs))

	posts := t.pipeline.Scraper.ScrapeBatch(ctx, postURLs, t.options.Delay)

	if t.pipeline.Metrics != nil {
		for _, post := range posts {
			t.pipeline.Metrics.ObservePost(post.Failed())
		}
	}

	return posts
}

func (t *ScrapeFeedTask) processPosts(ctx context.Context, processor *links.Processor, entries []feed.Entry, posts []scraper.Post) []report.ProductLink {
	var productLinks []report.ProductLink

	for i, post := range posts {
		for _, link := range post.MerchantLinks {
			if ctx.Err() != nil {
				return productLinks
			}

			title := cmp.Or(post.Title, "No title") + " - " + link.Text
			productLinks = append(productLinks, t.productLink(ctx, processor, link.URL, report.ProductLink{
				Title:      title,
				Merchant:   link.Merchant,
				LinkType:   link.LinkType,
				SourcePost: post.URL,
				Published:  entries[i].Published,
			}))
		}
	}

	return productLinks
}

func (t *ScrapeFeedTask) processEntries(ctx context.Context, processor *links.Processor, entries []feed.Entry) []report.ProductLink {
	productLinks := make([]report.ProductLink, 0, len(entries))

	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		productLinks = append(productLinks, t.productLink(ctx, processor, entry.Link, report.ProductLink{
			Title:     entry.Title,
			LinkType:  "feed_entry",
			Published: entry.Published,
		}))
	}

	return productLinks
}

func (t *ScrapeFeedTask) productLink(ctx context.Context, processor *links.Processor, rawURL string, base report.ProductLink) report.ProductLink {
	base.ProcessedLink = processor.Process(ctx, rawURL)

	product := resolver.ExtractProductInfo(base.ResolvedURL)
	base.Product = &product
	if base.Merchant == "" {
		base.Merchant = product.Merchant
	}

	base.TrackingURL = t.pipeline.Affiliate.RedirectLink(base.FinalURL, base.Title)

	return base
}

func (t *ScrapeFeedTask) runRecord(startedAt time.Time, err error) database.Run {
	run := database.Run{
		ID:         t.ID,
		FeedURL:    t.FeedURL,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}

	if err != nil {
		run.Error = err.Error()
		return run
	}

	run.Entries = t.Report.Stats.RSSEntries
	run.PostsScraped = t.Report.Stats.PostsScraped
	run.LinksFound = len(t.Report.ProductLinks)
	run.Processed = t.Report.Summary.Processed
	run.Skipped = t.Report.Summary.Skipped
	run.SuccessRate = t.Report.Summary.SuccessRate

	return run
}

// saveRun stores the history record. A failed write is logged, not returned.
func (t *ScrapeFeedTask) saveRun(ctx context.Context, run database.Run) {
	if t.pipeline.Runs == nil {
		return
	}

	if err := t.pipeline.Runs.Insert(context.WithoutCancel(ctx), run); err != nil {
		slog.Warn("Failed to store run history", "id", run.ID, "feed", run.FeedURL, "error", err)
	}
}

func countMerchantLinks(posts []scraper.Post) int {
	total := 0
	for _, post := range posts {
		total += len(post.MerchantLinks)
	}
	return total
}
