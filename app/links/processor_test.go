package links

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/lysyi3m/deal-comb/app/affiliate"
	"github.com/lysyi3m/deal-comb/app/resolver"
)

type stubResolver struct {
	results map[string]resolver.Resolution
}

func (s *stubResolver) Run(ctx context.Context, rawURL string) resolver.Resolution {
	if r, ok := s.results[rawURL]; ok {
		return r
	}
	return resolver.Resolution{URL: rawURL, Source: resolver.SourceFailed, Err: errors.New("network unreachable")}
}

type countingRecorder struct {
	links int
}

func (r *countingRecorder) ObserveLink(source resolver.Source, outcome affiliate.Outcome) {
	r.links++
}

func newTestProcessor(resolver Resolver, config *affiliate.Config, recorder Recorder) *Processor {
	return NewProcessor(resolver, affiliate.NewCleaner(config), affiliate.NewInjector(config), recorder)
}

func TestProcessorResolvesThenInjects(t *testing.T) {
	config := affiliate.DefaultConfig()
	stub := &stubResolver{results: map[string]resolver.Resolution{
		"https://amzn.to/abc": {URL: "https://www.amazon.ca/dp/B08N5WRWNW", Source: resolver.SourceFollowed},
	}}
	recorder := &countingRecorder{}
	processor := newTestProcessor(stub, config, recorder)

	link := processor.Process(context.Background(), "https://amzn.to/abc")

	if link.ResolvedURL != "https://www.amazon.ca/dp/B08N5WRWNW" {
		t.Errorf("Expected resolved amazon URL, got %s", link.ResolvedURL)
	}
	u, err := url.Parse(link.FinalURL)
	if err != nil {
		t.Fatalf("Expected valid final URL, got error: %v", err)
	}
	if u.Query().Get("tag") != "yourtag-20" {
		t.Errorf("Expected default tag, got %s", link.FinalURL)
	}
	if !link.AffiliateApplied || !link.Processed {
		t.Errorf("Expected link to be applied and processed: %+v", link)
	}
	if link.Resolution != "followed" || link.Outcome != "applied" {
		t.Errorf("Expected followed/applied, got %s/%s", link.Resolution, link.Outcome)
	}
	if recorder.links != 1 {
		t.Errorf("Expected 1 recorded link, got %d", recorder.links)
	}
}

func TestProcessorShortenerFailurePassThrough(t *testing.T) {
	processor := newTestProcessor(&stubResolver{}, affiliate.DefaultConfig(), nil)

	link := processor.Process(context.Background(), "https://bit.ly/xyz")

	if link.FinalURL != "https://bit.ly/xyz" || link.ResolvedURL != "https://bit.ly/xyz" {
		t.Errorf("Expected unchanged bit.ly URL, got %+v", link)
	}
	if link.Processed || link.AffiliateApplied {
		t.Errorf("Expected link to be skipped: %+v", link)
	}
	if link.Outcome != "unknown_merchant" || link.Resolution != "failed" {
		t.Errorf("Expected failed/unknown_merchant, got %s/%s", link.Resolution, link.Outcome)
	}
}

func TestProcessorCleansAfterFailedResolution(t *testing.T) {
	processor := newTestProcessor(&stubResolver{}, affiliate.DefaultConfig(), nil)
	rawURL := "https://www.amazon.ca/s?k=lamp&utm_source=spam&fbclid=abc&tag=old-20"

	link := processor.Process(context.Background(), rawURL)

	if link.ResolvedURL != rawURL {
		t.Errorf("Expected resolved URL to stay %s, got %s", rawURL, link.ResolvedURL)
	}
	if link.Resolution != "failed" || link.Outcome != "applied" {
		t.Errorf("Expected failed/applied, got %s/%s", link.Resolution, link.Outcome)
	}

	u, err := url.Parse(link.FinalURL)
	if err != nil {
		t.Fatalf("Expected valid final URL, got error: %v", err)
	}
	q := u.Query()
	if q.Has("fbclid") {
		t.Errorf("Expected fbclid to be stripped, got %s", link.FinalURL)
	}
	if q.Get("utm_source") != "rss_feed" {
		t.Errorf("Expected configured utm_source, got %s", link.FinalURL)
	}
	if got := q["tag"]; len(got) != 1 || got[0] != "yourtag-20" {
		t.Errorf("Expected single default tag, got %v", got)
	}
	if q.Get("k") != "lamp" {
		t.Errorf("Expected search term to survive, got %s", link.FinalURL)
	}
}

func TestProcessorStats(t *testing.T) {
	stub := &stubResolver{results: map[string]resolver.Resolution{
		"https://www.amazon.ca/dp/B08N5WRWNW": {URL: "https://www.amazon.ca/dp/B08N5WRWNW", Source: resolver.SourceDirect},
		"https://example.com/a":               {URL: "https://example.com/a", Source: resolver.SourceFollowed},
		"https://example.com/b?utm_source=x":  {URL: "https://example.com/b", Source: resolver.SourceFollowed},
	}}
	processor := newTestProcessor(stub, affiliate.DefaultConfig(), nil)

	for _, u := range []string{
		"https://www.amazon.ca/dp/B08N5WRWNW",
		"https://example.com/a",
		"https://example.com/b?utm_source=x",
	} {
		processor.Process(context.Background(), u)
	}

	stats := processor.Stats()
	if stats.Total != 3 || stats.Processed != 2 || stats.Skipped != 1 {
		t.Errorf("Expected 3 total, 2 processed, 1 skipped, got %+v", stats)
	}
	if stats.SuccessRate != 66.7 {
		t.Errorf("Expected success rate 66.7, got %v", stats.SuccessRate)
	}
}

func TestPercent(t *testing.T) {
	if Percent(0, 0) != 0 {
		t.Errorf("Expected 0 for empty total")
	}
	if Percent(1, 8) != 12.5 {
		t.Errorf("Expected 12.5, got %v", Percent(1, 8))
	}
}
