package affiliate

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Cleaner removes tracking and affiliate parameters from URLs.
type Cleaner struct {
	denied   map[string]struct{}
	prefixes []string
}

// NewCleaner creates a new cleaner from the config's deny-list
func NewCleaner(config *Config) *Cleaner {
	denied := make(map[string]struct{}, len(config.DeniedParams))
	for _, p := range config.DeniedParams {
		denied[strings.ToLower(p)] = struct{}{}
	}

	prefixes := make([]string, 0, len(config.DeniedPrefixes))
	for _, p := range config.DeniedPrefixes {
		prefixes = append(prefixes, strings.ToLower(p))
	}

	return &Cleaner{
		denied:   denied,
		prefixes: prefixes,
	}
}

// Run strips tracking parameters from rawURL. The input comes back untouched when
// nothing was removed or the URL does not parse.
func (c *Cleaner) Run(rawURL string) CleanResult {
	u, err := url.Parse(rawURL)
	if err != nil {
		slog.Warn("Failed to clean URL, keeping original", "url", rawURL, "error", err)
		return CleanResult{URL: rawURL, Err: fmt.Errorf("failed to parse URL: %w", err)}
	}

	if u.RawQuery == "" {
		return CleanResult{URL: rawURL}
	}

	var kept query
	var removed []string
	for _, p := range parseQuery(u.RawQuery) {
		if c.isTracking(p.key) {
			removed = append(removed, p.key)
			continue
		}
		kept = append(kept, p)
	}

	if len(removed) == 0 {
		return CleanResult{URL: rawURL}
	}

	u.RawQuery = kept.encode()
	u.ForceQuery = false

	return CleanResult{URL: u.String(), Removed: removed}
}

// Clean returns the cleaned URL, dropping the list of removed keys.
func (c *Cleaner) Clean(rawURL string) string {
	return c.Run(rawURL).URL
}

func (c *Cleaner) isTracking(key string) bool {
	key = strings.ToLower(key)
	if _, ok := c.denied[key]; ok {
		return true
	}
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
