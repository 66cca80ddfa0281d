package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	amazonProductID  = regexp.MustCompile(`/(dp|gp/product)/([A-Z0-9]{10})`)
	walmartProductID = regexp.MustCompile(`/ip/[^/]+/(\d+)`)
	bestbuyProductID = regexp.MustCompile(`/product/[^/]+/(\d+)`)
)

type ProductInfo struct {
	Merchant  string `json:"merchant"`
	ProductID string `json:"product_id,omitempty"`
	URLType   string `json:"url_type"`
}

func ExtractProductInfo(rawURL string) ProductInfo {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ProductInfo{Merchant: "unknown", URLType: "unknown"}
	}

	host := strings.ToLower(u.Host)

	switch {
	case strings.Contains(host, "amazon"):
		if m := amazonProductID.FindStringSubmatch(u.Path); m != nil {
			return ProductInfo{Merchant: "amazon", ProductID: m[2], URLType: "product"}
		}
	case strings.Contains(host, "walmart"):
		if m := walmartProductID.FindStringSubmatch(u.Path); m != nil {
			return ProductInfo{Merchant: "walmart", ProductID: m[1], URLType: "product"}
		}
	case strings.Contains(host, "bestbuy"):
		if m := bestbuyProductID.FindStringSubmatch(u.Path); m != nil {
			return ProductInfo{Merchant: "bestbuy", ProductID: m[1], URLType: "product"}
		}
	}

	merchant := strings.NewReplacer("www.", "", ".ca", "", ".com", "").Replace(host)
	return ProductInfo{Merchant: merchant, URLType: "unknown"}
}
