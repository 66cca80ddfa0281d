package affiliate

import (
	"strings"
)

var defaultMerchants = []Merchant{
	{Domain: "amazon.ca", Tag: "yourtag-20"},
	{Domain: "amazon.com", Tag: "yourtag-20"},
	{Domain: "walmart.ca", Tag: "your-walmart-id"},
	{Domain: "bestbuy.ca", Tag: "your-bestbuy-id"},
	{Domain: "canadiantire.ca", Tag: "your-ct-id"},
	{Domain: "staples.ca", Tag: "your-staples-id"},
	{Domain: "thebay.com", Tag: "your-bay-id"},
	{Domain: "sportchek.ca", Tag: "your-sportchek-id"},
	{Domain: "marks.com", Tag: "your-marks-id"},
	{Domain: "well.ca", Tag: "your-well-id"},
	{Domain: "chapters.indigo.ca", Tag: "your-indigo-id", EnvKey: "INDIGO_CA_TAG"},
	{Domain: "costco.ca", Tag: "your-costco-id"},
	{Domain: "gap.ca", Tag: "your-gap-id"},
	{Domain: "oldnavy.ca", Tag: "your-oldnavy-id"},
	{Domain: "bananarepublic.ca", Tag: "your-br-id"},
	{Domain: "lululemon.com", Tag: "your-lulu-id"},
	{Domain: "nike.com", Tag: "your-nike-id"},
	{Domain: "adidas.ca", Tag: "your-adidas-id"},
	{Domain: "newegg.ca", Tag: "your-newegg-id"},
	{Domain: "memoryexpress.com", Tag: "your-memex-id"},
	{Domain: "microsoft.com", Tag: "your-microsoft-id"},
	{Domain: "apple.com", Tag: "your-apple-id"},
}

var defaultParamRules = []ParamRule{
	{Match: "amazon", Param: "tag"},
	{Match: "walmart", Param: "affiliate"},
	{Match: "bestbuy", Param: "ref"},
	{Match: "staples", Param: "aff"},
	{Match: "adidas", Param: "aff"},
}

var defaultUTM = []Param{
	{Key: "utm_source", Value: "rss_feed"},
	{Key: "utm_medium", Value: "affiliate"},
	{Key: "utm_campaign", Value: "smartcanucks_deals"},
	{Key: "utm_content", Value: "rss_item"},
}

// Tracking and affiliate noise removed before a link is re-tagged.
var defaultDeniedParams = []string{
	// Generic trackers
	"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
	"gclid", "fbclid", "msclkid", "dclid", "gbraid", "wbraid",

	// Amazon
	"tag", "linkCode", "linkId", "ref_", "pf_rd_p", "pf_rd_r", "pf_rd_s", "pf_rd_t",
	"pf_rd_i", "pf_rd_m", "pd_rd_r", "pd_rd_w", "pd_rd_wg", "psc", "refRID", "th",

	// Walmart
	"athbdg", "athznb", "athiid", "athstid", "athena_met", "adid", "wmlspartner",
	"sourceid", "affillinktype", "veh", "selectedSellerId",

	// Best Buy and other retailers
	"ref", "loc", "acampID", "irclickid", "irgwc", "mpid", "intl", "cid", "utm_", "referrer",

	// Affiliate networks
	"aff", "affiliate", "partner", "promo", "coupon", "discount", "offer",
	"source", "medium", "campaign",

	// Social and email
	"igshid", "share", "shared", "email", "em", "newsletter", "mkt_tok", "trk", "mc_cid", "mc_eid",

	// Analytics cookies passed as params
	"_ga", "_gid", "_gac", "gclsrc",
}

var defaultDeniedPrefixes = []string{"utm_", "ga_", "gclid", "fbclid", "msclkid", "_"}

// DefaultConfig returns the built-in merchant table, UTM set and deny-list.
func DefaultConfig() *Config {
	merchants := make([]Merchant, len(defaultMerchants))
	for i, m := range defaultMerchants {
		if m.EnvKey == "" {
			m.EnvKey = EnvKeyFor(m.Domain)
		}
		merchants[i] = m
	}

	return &Config{
		Enabled:        true,
		AddUTMParams:   true,
		TrackClicks:    true,
		RedirectDomain: "your-domain.com",
		RedirectPath:   "/go/",
		Merchants:      merchants,
		ParamRules:     append([]ParamRule(nil), defaultParamRules...),
		DefaultParam:   "aff",
		UTM:            append([]Param(nil), defaultUTM...),
		DeniedParams:   append([]string(nil), defaultDeniedParams...),
		DeniedPrefixes: append([]string(nil), defaultDeniedPrefixes...),
	}
}

// EnvKeyFor derives the environment variable holding a merchant's tag, e.g. amazon.ca -> AMAZON_CA_TAG.
func EnvKeyFor(domain string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(domain)) + "_TAG"
}
