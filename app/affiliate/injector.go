package affiliate

import (
	"fmt"
	"log/slog"
	"net/url"
)

// Injector adds merchant affiliate tags and UTM parameters to cleaned URLs.
type Injector struct {
	config *Config
}

// NewInjector creates a new affiliate tag injector
func NewInjector(config *Config) *Injector {
	return &Injector{config: config}
}

// Run sets the merchant's affiliate parameter on rawURL and fills in any UTM
// parameters the link does not already carry. rawURL is expected to be cleaned.
func (i *Injector) Run(rawURL string) Injection {
	if !i.config.Enabled {
		return Injection{URL: rawURL, Outcome: OutcomeDisabled}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		slog.Warn("Failed to inject affiliate tag, keeping original", "url", rawURL, "error", err)
		return Injection{URL: rawURL, Outcome: OutcomeInvalidURL, Err: fmt.Errorf("failed to parse URL: %w", err)}
	}

	merchant, ok := i.config.MatchMerchant(u.Host)
	if !ok {
		return Injection{URL: rawURL, Outcome: OutcomeUnknownMerchant}
	}

	if merchant.Tag == "" {
		return Injection{URL: rawURL, Merchant: merchant.Domain, Outcome: OutcomeMissingTag}
	}

	param := i.config.ParamFor(u.Host)

	q := parseQuery(u.RawQuery).set(param, merchant.Tag)
	if i.config.AddUTMParams {
		for _, p := range i.config.UTM {
			if !q.has(p.Key) {
				q = q.add(p.Key, p.Value)
			}
		}
	}

	u.RawQuery = q.encode()

	slog.Debug("Affiliate tag injected", "merchant", merchant.Domain, "param", param, "url", u.String())

	return Injection{
		URL:      u.String(),
		Merchant: merchant.Domain,
		Param:    param,
		Outcome:  OutcomeApplied,
	}
}

// Inject returns the tagged URL, or the input when no tag could be applied.
func (i *Injector) Inject(rawURL string) string {
	return i.Run(rawURL).URL
}
