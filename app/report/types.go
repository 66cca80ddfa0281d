package report

import (
	"time"

	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/links"
	"github.com/lysyi3m/deal-comb/app/resolver"
	"github.com/lysyi3m/deal-comb/app/scraper"
)

// Report is the output document of one full pipeline run over a feed.
type Report struct {
	RunID             string            `json:"run_id"`
	FeedURL           string            `json:"feed_url"`
	ScrapedAt         string            `json:"scraped_at"`
	Stats             ScrapingStats     `json:"scraping_stats"`
	BlogPosts         []BlogPost        `json:"blog_posts"`
	ProductLinks      []ProductLink     `json:"product_links"`
	ProcessingSummary ProcessingSummary `json:"processing_summary"`
	Summary           links.Stats       `json:"summary"`
}

type ScrapingStats struct {
	RSSEntries              int     `json:"rss_entries"`
	PostsScraped            int     `json:"posts_scraped"`
	MerchantLinksFound      int     `json:"merchant_links_found"`
	AffiliateLinksProcessed int     `json:"affiliate_links_processed"`
	AffiliateSuccessRate    float64 `json:"affiliate_success_rate"`
}

// BlogPost is a feed entry, enriched with its scraped content when the post
// was among those scraped.
type BlogPost struct {
	feed.Entry
	ScrapedContent *ScrapedContent `json:"scraped_content,omitempty"`
	Error          string          `json:"error,omitempty"`
}

type ScrapedContent struct {
	Title              string           `json:"title"`
	ContentPreview     string           `json:"content_preview"`
	ContentSummary     string           `json:"content_summary"`
	OGImage            string           `json:"og_image,omitempty"`
	MerchantLinksCount int              `json:"merchant_links_count"`
	DealInfo           scraper.DealInfo `json:"deal_info"`
	ScrapedAt          time.Time        `json:"scraped_at"`
}

// ProductLink is a merchant link after resolution and affiliate processing.
type ProductLink struct {
	Title      string `json:"title"`
	Merchant   string `json:"merchant"`
	LinkType   string `json:"link_type"`
	SourcePost string `json:"source_post"`
	Published  string `json:"published"`
	links.ProcessedLink
	Product     *resolver.ProductInfo `json:"product,omitempty"`
	TrackingURL string                `json:"tracking_url,omitempty"`
}

type ProcessingSummary struct {
	TotalBlogPosts     int `json:"total_blog_posts"`
	TotalProductLinks  int `json:"total_product_links"`
	AffiliateProcessed int `json:"affiliate_processed"`
	UniqueMerchants    int `json:"unique_merchants"`
}

// Batch wraps the reports of a run over several feeds. Feeds that failed are
// listed in Errors and have no report.
type Batch struct {
	GeneratedAt string        `json:"generated_at"`
	Reports     []Report      `json:"reports"`
	Errors      []FeedFailure `json:"errors,omitempty"`
}

type FeedFailure struct {
	FeedURL string `json:"feed_url"`
	Error   string `json:"error"`
}
