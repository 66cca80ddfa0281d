package tasks

import (
	"github.com/lysyi3m/deal-comb/app/affiliate"
	"github.com/lysyi3m/deal-comb/app/database"
	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/links"
	"github.com/lysyi3m/deal-comb/app/metrics"
	"github.com/lysyi3m/deal-comb/app/scraper"
)

// Pipeline holds the components shared by every run. Metrics and Runs are
// optional.
type Pipeline struct {
	Source    *feed.Source
	Scraper   *scraper.PostScraper
	Resolver  links.Resolver
	Injector  *affiliate.Injector
	Affiliate *affiliate.Config
	Metrics   *metrics.Metrics
	Runs      database.RunStore
}

// NewProcessor returns a fresh Processor so counters never leak between runs.
func (p *Pipeline) NewProcessor() *links.Processor {
	var recorder links.Recorder
	if p.Metrics != nil {
		recorder = p.Metrics
	}
	return links.NewProcessor(p.Resolver, affiliate.NewCleaner(p.Affiliate), p.Injector, recorder)
}
