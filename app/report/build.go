package report

import (
	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/scraper"
)

const previewLength = 200

func NewScrapedContent(post scraper.Post) *ScrapedContent {
	return &ScrapedContent{
		Title:              post.Title,
		ContentPreview:     Preview(post.Content),
		ContentSummary:     post.Summary,
		OGImage:            post.OGImage,
		MerchantLinksCount: len(post.MerchantLinks),
		DealInfo:           post.DealInfo,
		ScrapedAt:          post.ScrapedAt,
	}
}

// Preview returns the first 200 characters of content followed by "...", or ""
// for empty content.
func Preview(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	return string(runes[:min(previewLength, len(runes))]) + "..."
}

// NewBlogPosts pairs entries with the posts scraped from them by position.
// Entries past the scraped posts are kept without content.
func NewBlogPosts(entries []feed.Entry, posts []scraper.Post) []BlogPost {
	blogPosts := make([]BlogPost, 0, len(entries))

	for i, entry := range entries {
		blogPost := BlogPost{Entry: entry}
		if i < len(posts) {
			if posts[i].Failed() {
				blogPost.Error = posts[i].Error
			} else {
				blogPost.ScrapedContent = NewScrapedContent(posts[i])
			}
		}
		blogPosts = append(blogPosts, blogPost)
	}

	return blogPosts
}

func NewProcessingSummary(blogPosts []BlogPost, productLinks []ProductLink) ProcessingSummary {
	processed := 0
	merchants := make(map[string]struct{})

	for _, link := range productLinks {
		if link.Processed {
			processed++
		}
		merchants[link.Merchant] = struct{}{}
	}

	return ProcessingSummary{
		TotalBlogPosts:     len(blogPosts),
		TotalProductLinks:  len(productLinks),
		AffiliateProcessed: processed,
		UniqueMerchants:    len(merchants),
	}
}
