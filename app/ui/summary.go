// Package ui prints run summaries to the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/links"
	"github.com/lysyi3m/deal-comb/app/report"
)

func row(w io.Writer, label string, value string) {
	fmt.Fprintln(w, LabelStyle.Render(label)+ValueStyle.Render(value))
}

func PrintReport(w io.Writer, r *report.Report) {
	fmt.Fprintln(w, HeaderStyle.Render("Deal run "+r.RunID))
	row(w, "Feed", r.FeedURL)
	row(w, "RSS entries", strconv.Itoa(r.Stats.RSSEntries))
	row(w, "Posts scraped", strconv.Itoa(r.Stats.PostsScraped))
	row(w, "Merchant links found", strconv.Itoa(r.Stats.MerchantLinksFound))
	row(w, "Product links", strconv.Itoa(r.ProcessingSummary.TotalProductLinks))
	row(w, "Unique merchants", strconv.Itoa(r.ProcessingSummary.UniqueMerchants))
	fmt.Fprintln(w, LabelStyle.Render("Affiliate success rate")+
		ScoreStyle.Render(fmt.Sprintf("%.1f%%", r.Summary.SuccessRate))+
		ValueStyle.Render(fmt.Sprintf(" (%d processed, %d skipped)", r.Summary.Processed, r.Summary.Skipped)))

	failed := 0
	for _, post := range r.BlogPosts {
		if post.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("%d post(s) could not be scraped", failed)))
	}
}

// PrintBatch prints every report of a multi-feed run followed by its failures.
func PrintBatch(w io.Writer, batch report.Batch) {
	for i := range batch.Reports {
		PrintReport(w, &batch.Reports[i])
		fmt.Fprintln(w)
	}

	for _, failure := range batch.Errors {
		fmt.Fprintln(w, ErrorStyle.Render("✗ "+failure.FeedURL)+" "+failure.Error)
	}

	status := SuccessStyle.Render(fmt.Sprintf("✓ %d feed(s) processed", len(batch.Reports)))
	if len(batch.Errors) > 0 {
		status += " " + ErrorStyle.Render(fmt.Sprintf("%d failed", len(batch.Errors)))
	}
	fmt.Fprintln(w, status)
}

func PrintLink(w io.Writer, link links.ProcessedLink) {
	row(w, "Original", link.OriginalURL)
	row(w, "Resolved", link.ResolvedURL+" ("+link.Resolution+")")
	fmt.Fprintln(w, LabelStyle.Render("Final")+LinkStyle.Render(link.FinalURL))

	if link.AffiliateApplied {
		fmt.Fprintln(w, SuccessStyle.Render("✓ affiliate tag applied for "+link.Merchant))
	} else {
		fmt.Fprintln(w, WarningStyle.Render("affiliate tag not applied: "+link.Outcome))
	}
}

func PrintDocument(w io.Writer, doc *feed.Document, output string) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("✓ Converted %d entries", len(doc.Entries))))
	row(w, "Feed", doc.FeedURL)
	row(w, "Output", output)
}
