package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/deal-comb/app/web"
)

type Post struct {
	URL           string         `json:"url"`
	Title         string         `json:"title,omitempty"`
	Content       string         `json:"content,omitempty"`
	Summary       string         `json:"content_summary,omitempty"`
	OGImage       string         `json:"og_image,omitempty"`
	MerchantLinks []MerchantLink `json:"merchant_links,omitempty"`
	DealInfo      DealInfo       `json:"deal_info"`
	ScrapedAt     time.Time      `json:"scraped_at"`
	Error         string         `json:"error,omitempty"`
}

func (p Post) Failed() bool {
	return p.Error != ""
}

// Delay is the politeness pause taken before each post fetch, drawn uniformly
// from [Min, Max].
type Delay struct {
	Min time.Duration
	Max time.Duration
}

// DelayFromSeconds returns the delay used by the CLI: uniform in
// [seconds, seconds+1].
func DelayFromSeconds(seconds float64) Delay {
	base := time.Duration(seconds * float64(time.Second))
	return Delay{Min: base, Max: base + time.Second}
}

func (d Delay) next() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + rand.N(d.Max-d.Min+1)
}

type PostScraper struct {
	fetcher   *web.Fetcher
	extractor *Extractor
	content   *ContentExtractor
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewPostScraper(fetcher *web.Fetcher, extractor *Extractor, content *ContentExtractor) *PostScraper {
	return &PostScraper{
		fetcher:   fetcher,
		extractor: extractor,
		content:   content,
		sleep:     sleepContext,
	}
}

// Scrape fetches and parses one post. Failures are reported in Post.Error.
func (s *PostScraper) Scrape(ctx context.Context, postURL string) Post {
	slog.Debug("Scraping post", "url", postURL)

	page, err := s.fetcher.Get(ctx, postURL)
	if err != nil {
		slog.Warn("Failed to scrape post", "url", postURL, "error", err)
		return Post{URL: postURL, Error: err.Error(), ScrapedAt: time.Now().UTC()}
	}

	post, err := s.Parse(page.Body, postURL)
	if err != nil {
		slog.Warn("Failed to parse post", "url", postURL, "error", err)
		return Post{URL: postURL, Error: err.Error(), ScrapedAt: time.Now().UTC()}
	}

	slog.Debug("Post scraped", "url", postURL, "merchant_links", len(post.MerchantLinks))

	return post
}

// Parse builds a Post from already fetched HTML.
func (s *PostScraper) Parse(data []byte, postURL string) (Post, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return Post{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	text := s.content.Text(doc, data, postURL)

	return Post{
		URL:           postURL,
		Title:         s.content.Title(doc),
		Content:       text,
		Summary:       Summarize(text),
		OGImage:       s.content.Image(doc, postURL),
		MerchantLinks: s.extractor.Run(doc, postURL),
		DealInfo:      ExtractDealInfo(textOf(doc.Find("body"))),
		ScrapedAt:     time.Now().UTC(),
	}, nil
}

// ScrapeBatch scrapes posts one at a time in order, pausing before every fetch.
// It stops early only when ctx is done.
func (s *PostScraper) ScrapeBatch(ctx context.Context, postURLs []string, delay Delay) []Post {
	posts := make([]Post, 0, len(postURLs))
	totalLinks := 0

	for i, postURL := range postURLs {
		if err := s.sleep(ctx, delay.next()); err != nil {
			slog.Warn("Post scraping interrupted", "scraped", len(posts), "total", len(postURLs), "error", err)
			break
		}

		post := s.Scrape(ctx, postURL)
		posts = append(posts, post)
		totalLinks += len(post.MerchantLinks)

		if (i+1)%5 == 0 {
			slog.Info("Scraping progress", "posts", i+1, "total", len(postURLs), "merchant_links", totalLinks)
		}
	}

	return posts
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
