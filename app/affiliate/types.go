package affiliate

import (
	"strings"
)

// Merchant is one row of the affiliate table. Order in Config.Merchants is significant:
// the first domain contained in a URL's host wins.
type Merchant struct {
	Domain string `yaml:"domain"`
	Tag    string `yaml:"tag"`
	EnvKey string `yaml:"env"`
}

// Param is a key/value pair appended to affiliate links, such as a UTM tag.
type Param struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// ParamRule maps a host substring to the query parameter the merchant reads its tag from.
type ParamRule struct {
	Match string `yaml:"match"`
	Param string `yaml:"param"`
}

// Config is built once at startup and shared read-only by every component of a run.
type Config struct {
	Enabled        bool
	AddUTMParams   bool
	TrackClicks    bool
	RedirectDomain string
	RedirectPath   string

	Merchants    []Merchant
	ParamRules   []ParamRule
	DefaultParam string
	UTM          []Param

	DeniedParams   []string
	DeniedPrefixes []string
}

// MatchMerchant returns the first merchant whose domain is contained in host.
func (c *Config) MatchMerchant(host string) (Merchant, bool) {
	host = strings.ToLower(host)
	if host == "" {
		return Merchant{}, false
	}

	for _, m := range c.Merchants {
		if strings.Contains(host, m.Domain) {
			return m, true
		}
	}

	return Merchant{}, false
}

// ParamFor returns the query parameter a host reads its affiliate tag from,
// falling back to DefaultParam.
func (c *Config) ParamFor(host string) string {
	host = strings.ToLower(host)
	for _, rule := range c.ParamRules {
		if strings.Contains(host, rule.Match) {
			return rule.Param
		}
	}
	return c.DefaultParam
}

// Outcome tells why an injection did or did not change the URL.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeDisabled
	OutcomeUnknownMerchant
	OutcomeMissingTag
	OutcomeInvalidURL
)

// String returns the outcome label used in logs, metrics and JSON output.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeUnknownMerchant:
		return "unknown_merchant"
	case OutcomeMissingTag:
		return "missing_tag"
	case OutcomeInvalidURL:
		return "invalid_url"
	default:
		return "unknown"
	}
}

// Injection is the result of a tag injection. URL always holds a usable link:
// the rewritten one when Outcome is OutcomeApplied, the input otherwise.
type Injection struct {
	URL      string
	Merchant string
	Param    string
	Outcome  Outcome
	Err      error
}

// Applied reports whether the URL was rewritten with an affiliate tag.
func (i Injection) Applied() bool {
	return i.Outcome == OutcomeApplied
}

// CleanResult carries the cleaned URL and the query keys that were dropped.
// On a parse failure URL is the untouched input and Err is set.
type CleanResult struct {
	URL     string
	Removed []string
	Err     error
}
