package resolver

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/lysyi3m/deal-comb/app/affiliate"
	"github.com/lysyi3m/deal-comb/app/web"
)

// Product page shapes that are already canonical and need no redirect lookup.
var directPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)amazon\.(ca|com)/(.*/)?(dp|gp/product)/[A-Z0-9]{10}`),
	regexp.MustCompile(`(?i)walmart\.ca/.*ip/.*`),
	regexp.MustCompile(`(?i)bestbuy\.ca/.*product/.*`),
	regexp.MustCompile(`(?i)canadiantire\.ca/.*product/.*`),
	regexp.MustCompile(`(?i)staples\.ca/.*product/.*`),
	regexp.MustCompile(`(?i)thebay\.com/.*product/.*`),
	regexp.MustCompile(`(?i)sportchek\.ca/.*product/.*`),
	regexp.MustCompile(`(?i)marks\.com/.*product/.*`),
	regexp.MustCompile(`(?i)well\.ca/.*product/.*`),
	regexp.MustCompile(`(?i)chapters\.indigo\.ca/.*product/.*`),
	regexp.MustCompile(`(?i)costco\.ca/.*product/.*`),
}

type Source int

const (
	SourceDirect Source = iota
	SourceFollowed
	SourceFailed
)

func (s Source) String() string {
	switch s {
	case SourceDirect:
		return "direct"
	case SourceFollowed:
		return "followed"
	case SourceFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving a link. On SourceFailed URL is the
// original input, untouched, and Err holds the cause.
type Resolution struct {
	URL    string
	Source Source
	Err    error
}

type Resolver struct {
	client    *http.Client
	userAgent string
	cleaner   *affiliate.Cleaner
}

func NewResolver(client *http.Client, userAgent string, cleaner *affiliate.Cleaner) *Resolver {
	return &Resolver{
		client:    client,
		userAgent: cmp.Or(userAgent, web.DefaultUserAgent),
		cleaner:   cleaner,
	}
}

func IsDirect(rawURL string) bool {
	for _, pattern := range directPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// Run follows rawURL to its final destination with a HEAD request and cleans it.
// Known product URLs skip the network entirely.
func (r *Resolver) Run(ctx context.Context, rawURL string) Resolution {
	if IsDirect(rawURL) {
		return Resolution{URL: r.cleaner.Clean(rawURL), Source: SourceDirect}
	}

	final, err := r.follow(ctx, rawURL)
	if err != nil {
		slog.Warn("Failed to resolve URL, keeping original", "url", rawURL, "error", err)
		return Resolution{URL: rawURL, Source: SourceFailed, Err: err}
	}

	return Resolution{URL: r.cleaner.Clean(final), Source: SourceFollowed}
}

func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	return r.Run(ctx, rawURL).URL
}

func (r *Resolver) follow(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to follow redirects: %w", err)
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}
