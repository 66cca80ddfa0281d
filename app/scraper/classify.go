package scraper

import (
	"net/url"
	"strings"
)

type linkRule struct {
	match    string
	subtypes []linkSubtype
	fallback string
}

type linkSubtype struct {
	segments []string
	label    string
}

var merchantLinkRules = []linkRule{
	{
		match: "amazon",
		subtypes: []linkSubtype{
			{segments: []string{"/dp/", "/gp/product/"}, label: "amazon_product"},
			{segments: []string{"/deal/", "/gp/deal/"}, label: "amazon_deal"},
		},
		fallback: "amazon_other",
	},
	{
		match:    "walmart",
		subtypes: []linkSubtype{{segments: []string{"/ip/"}, label: "walmart_product"}},
		fallback: "walmart_other",
	},
	{
		match:    "bestbuy",
		subtypes: []linkSubtype{{segments: []string{"/product/"}, label: "bestbuy_product"}},
		fallback: "bestbuy_other",
	},
}

var productPageKeywords = []string{"product", "item", "deal"}

// hostOf returns the lowercased host without a leading "www.".
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

func (e *Extractor) identifyMerchant(host string) string {
	for _, s := range e.config.Shorteners {
		if strings.Contains(host, s.Domain) {
			return s.Merchant
		}
	}

	for _, domain := range e.config.MerchantDomains {
		if strings.Contains(host, domain) {
			return strings.NewReplacer(".ca", "", ".com", "").Replace(domain)
		}
	}

	return "unknown"
}

func (e *Extractor) classifyLinkType(rawURL string) string {
	lower := strings.ToLower(rawURL)

	for _, s := range e.config.Shorteners {
		if strings.Contains(lower, s.Domain) {
			return s.Merchant + "_product"
		}
	}

	for _, rule := range merchantLinkRules {
		if !strings.Contains(lower, rule.match) {
			continue
		}
		for _, subtype := range rule.subtypes {
			if containsAny(lower, subtype.segments) {
				return subtype.label
			}
		}
		return rule.fallback
	}

	if containsAny(lower, productPageKeywords) {
		return "product_page"
	}

	return "merchant_page"
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
