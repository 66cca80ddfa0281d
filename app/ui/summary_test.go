package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/links"
	"github.com/lysyi3m/deal-comb/app/report"
)

func sampleReport() report.Report {
	return report.Report{
		RunID:   "run-1",
		FeedURL: "https://smartcanucks.ca/feed/",
		Stats: report.ScrapingStats{
			RSSEntries:         12,
			PostsScraped:       3,
			MerchantLinksFound: 7,
		},
		BlogPosts: []report.BlogPost{
			{Entry: feed.Entry{Title: "ok"}},
			{Entry: feed.Entry{Title: "broken"}, Error: "HTTP error: 404 Not Found"},
		},
		ProcessingSummary: report.ProcessingSummary{TotalProductLinks: 7, UniqueMerchants: 2},
		Summary:           links.Stats{Processed: 5, Skipped: 2, Total: 7, SuccessRate: 71.4},
	}
}

func TestPrintReport(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	PrintReport(&buf, &r)
	out := buf.String()

	for _, want := range []string{"run-1", "https://smartcanucks.ca/feed/", "12", "71.4%", "5 processed, 2 skipped", "1 post(s) could not be scraped"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintBatch(t *testing.T) {
	batch := report.Batch{
		Reports: []report.Report{sampleReport()},
		Errors:  []report.FeedFailure{{FeedURL: "https://broken.example/feed", Error: "Feed not found (404)"}},
	}

	var buf bytes.Buffer
	PrintBatch(&buf, batch)
	out := buf.String()

	for _, want := range []string{"run-1", "https://broken.example/feed", "Feed not found (404)", "1 feed(s) processed", "1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintLink(t *testing.T) {
	var buf bytes.Buffer
	PrintLink(&buf, links.ProcessedLink{
		OriginalURL: "https://amzn.to/abc",
		ResolvedURL: "https://www.amazon.ca/dp/B000000000",
		FinalURL:    "https://www.amazon.ca/dp/B000000000?tag=yourtag-20",
		Outcome:     "unknown_merchant",
		Resolution:  "followed",
	})
	out := buf.String()

	for _, want := range []string{"https://amzn.to/abc", "(followed)", "tag=yourtag-20", "not applied: unknown_merchant"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	PrintDocument(&buf, &feed.Document{FeedURL: "https://smartcanucks.ca/feed/", Entries: make([]feed.Entry, 4)}, "public/feed.json")

	if out := buf.String(); !strings.Contains(out, "Converted 4 entries") || !strings.Contains(out, "public/feed.json") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}
