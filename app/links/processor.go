package links

import (
	"context"
	"log/slog"
	"math"

	"github.com/lysyi3m/deal-comb/app/affiliate"
	"github.com/lysyi3m/deal-comb/app/resolver"
)

type ProcessedLink struct {
	OriginalURL      string `json:"original_url"`
	ResolvedURL      string `json:"resolved_url"`
	FinalURL         string `json:"final_url"`
	AffiliateApplied bool   `json:"affiliate_applied"`
	Processed        bool   `json:"affiliate_processed"`
	Merchant         string `json:"affiliate_merchant,omitempty"`
	Outcome          string `json:"outcome"`
	Resolution       string `json:"resolution"`
}

type Stats struct {
	Processed   int     `json:"processed"`
	Skipped     int     `json:"skipped"`
	Total       int     `json:"total"`
	SuccessRate float64 `json:"success_rate"`
}

type Resolver interface {
	Run(ctx context.Context, rawURL string) resolver.Resolution
}

// Recorder receives one observation per processed link.
type Recorder interface {
	ObserveLink(resolution resolver.Source, outcome affiliate.Outcome)
}

// Processor runs resolve -> clean -> inject for each link of a run and keeps the
// run's counters. It is not safe for concurrent use; create one per run.
type Processor struct {
	resolver Resolver
	cleaner  *affiliate.Cleaner
	injector *affiliate.Injector
	recorder Recorder

	processed int
	skipped   int
}

// NewProcessor creates a processor for one run. recorder may be nil.
func NewProcessor(resolver Resolver, cleaner *affiliate.Cleaner, injector *affiliate.Injector, recorder Recorder) *Processor {
	return &Processor{
		resolver: resolver,
		cleaner:  cleaner,
		injector: injector,
		recorder: recorder,
	}
}

// Process resolves rawURL, cleans it and injects the affiliate tag. ResolvedURL
// keeps the resolver's answer, which is the untouched input when resolution failed.
func (p *Processor) Process(ctx context.Context, rawURL string) ProcessedLink {
	resolution := p.resolver.Run(ctx, rawURL)

	// A failed resolution hands back the raw input, so the tagger always gets a
	// cleaned copy.
	injection := p.injector.Run(p.cleaner.Clean(resolution.URL))

	link := ProcessedLink{
		OriginalURL:      rawURL,
		ResolvedURL:      resolution.URL,
		FinalURL:         injection.URL,
		AffiliateApplied: injection.Applied(),
		Processed:        injection.URL != rawURL,
		Merchant:         injection.Merchant,
		Outcome:          injection.Outcome.String(),
		Resolution:       resolution.Source.String(),
	}

	if link.Processed {
		p.processed++
	} else {
		p.skipped++
	}

	if p.recorder != nil {
		p.recorder.ObserveLink(resolution.Source, injection.Outcome)
	}

	slog.Debug("Link processed",
		"original", link.OriginalURL,
		"final", link.FinalURL,
		"resolution", link.Resolution,
		"outcome", link.Outcome)

	return link
}

// Stats returns the counters of every link processed so far.
func (p *Processor) Stats() Stats {
	total := p.processed + p.skipped
	return Stats{
		Processed:   p.processed,
		Skipped:     p.skipped,
		Total:       total,
		SuccessRate: Percent(p.processed, total),
	}
}

// Percent returns part/total as a percentage rounded to one decimal, 0 for an empty total.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
