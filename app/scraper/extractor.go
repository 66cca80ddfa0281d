package scraper

import (
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

type MerchantLink struct {
	URL      string `json:"url"`
	Text     string `json:"text"`
	Merchant string `json:"merchant"`
	LinkType string `json:"link_type"`
}

type Extractor struct {
	config     *Config
	navigation *regexp.Regexp
}

func NewExtractor(config *Config) *Extractor {
	phrases := make([]string, 0, len(config.NavigationPhrases))
	for _, p := range config.NavigationPhrases {
		phrases = append(phrases, regexp.QuoteMeta(strings.ToLower(p)))
	}

	var navigation *regexp.Regexp
	if len(phrases) > 0 {
		navigation = regexp.MustCompile(`\b(` + strings.Join(phrases, "|") + `)\b`)
	}

	return &Extractor{
		config:     config,
		navigation: navigation,
	}
}

// Run returns the deal links found in the main content of doc, in document order
// and without duplicate URLs. baseURL resolves relative hrefs.
func (e *Extractor) Run(doc *goquery.Document, baseURL string) []MerchantLink {
	base, err := url.Parse(baseURL)
	if err != nil {
		slog.Warn("Invalid base URL, relative links will be skipped", "url", baseURL, "error", err)
	}
	sourceHost := hostOf(baseURL)

	regions := e.contentRegions(doc)
	if regions == nil {
		return nil
	}

	var links []MerchantLink
	seen := make(map[string]bool)

	regions.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if e.ignored(a) {
			return
		}

		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || containsAny(strings.ToLower(href), e.config.SkipPatterns) {
			return
		}

		text := textOf(a)
		if e.isNavigation(text) {
			return
		}

		fullURL, ok := resolveRef(base, href)
		if !ok {
			return
		}

		if utf8.RuneCountInString(text) < 2 {
			return
		}

		if !e.isDealLink(fullURL, text, a, sourceHost) {
			return
		}

		if seen[fullURL] {
			return
		}
		seen[fullURL] = true

		links = append(links, MerchantLink{
			URL:      fullURL,
			Text:     text,
			Merchant: e.identifyMerchant(hostOf(fullURL)),
			LinkType: e.classifyLinkType(fullURL),
		})
	})

	return links
}

// contentRegions picks the first content selector with any match, keeping all of
// its matches. Without one it falls back to the first article, main or div holding
// enough text.
func (e *Extractor) contentRegions(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.config.ContentSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			return found
		}
	}

	var region *goquery.Selection
	doc.Find("article, main, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if utf8.RuneCountInString(textOf(s)) > e.config.MinRegionText {
			region = s
			return false
		}
		return true
	})

	return region
}

func (e *Extractor) ignored(a *goquery.Selection) bool {
	for _, selector := range e.config.IgnoredSelectors {
		if a.Closest(selector).Length() > 0 {
			return true
		}
	}
	return false
}

func (e *Extractor) isNavigation(text string) bool {
	return e.navigation != nil && e.navigation.MatchString(strings.ToLower(text))
}

func (e *Extractor) isDealLink(fullURL, text string, a *goquery.Selection, sourceHost string) bool {
	if containsAny(strings.ToLower(text), e.config.DealPhrases) {
		return true
	}

	if parent := a.Parent(); parent.Length() > 0 {
		if containsAny(strings.ToLower(textOf(parent)), e.config.ContextKeywords) {
			return true
		}
	}

	if containsAny(strings.ToLower(fullURL), e.config.URLKeywords) {
		return true
	}

	host := hostOf(fullURL)
	if containsAny(host, e.config.MerchantDomains) {
		return true
	}

	for _, attr := range e.config.DealAttributes {
		if _, ok := a.Attr(attr); ok {
			return true
		}
	}

	// Recall over precision: any off-site anchor with some text counts.
	// This over-matches on link-heavy posts and is kept on purpose.
	return host != sourceHost && !slices.Contains(e.config.SiteDomains, host) &&
		utf8.RuneCountInString(text) > e.config.MinOffsiteText
}

func resolveRef(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if base == nil {
		if !ref.IsAbs() {
			return "", false
		}
		return ref.String(), true
	}
	return base.ResolveReference(ref).String(), true
}

// textOf joins the trimmed, NFKC-normalized text nodes of sel with single spaces.
func textOf(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(norm.NFKC.String(n.Data)); t != "" {
			*parts = append(*parts, t)
		}
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
