package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	discountPattern = regexp.MustCompile(`(\d+)%\s*off`)
	pricePattern    = regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`)
	couponPattern   = regexp.MustCompile(`(?i:code)[:\s]+([A-Z0-9]+)`)
	expiryPattern   = regexp.MustCompile(`until\s+(\w+\s+\d+)`)
)

// DealInfo holds the promotion details spotted in a post. Nil fields were not found.
type DealInfo struct {
	DiscountPercentage *int     `json:"discount_percentage"`
	OriginalPrice      *float64 `json:"original_price"`
	SalePrice          *float64 `json:"sale_price"`
	CouponCode         *string  `json:"coupon_code"`
	ExpiryDate         *string  `json:"expiry_date"`
}

func ExtractDealInfo(text string) DealInfo {
	var info DealInfo
	lower := strings.ToLower(text)

	for _, m := range discountPattern.FindAllStringSubmatch(lower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			if info.DiscountPercentage == nil || n > *info.DiscountPercentage {
				info.DiscountPercentage = &n
			}
		}
	}

	var prices []float64
	for _, m := range pricePattern.FindAllStringSubmatch(lower, -1) {
		if p, err := strconv.ParseFloat(m[1], 64); err == nil {
			prices = append(prices, p)
		}
	}
	if len(prices) >= 2 {
		high, low := prices[0], prices[0]
		for _, p := range prices[1:] {
			high = max(high, p)
			low = min(low, p)
		}
		info.OriginalPrice = &high
		info.SalePrice = &low
	}

	if m := couponPattern.FindStringSubmatch(text); m != nil {
		info.CouponCode = &m[1]
	}

	if m := expiryPattern.FindStringSubmatch(lower); m != nil {
		info.ExpiryDate = &m[1]
	}

	return info
}
