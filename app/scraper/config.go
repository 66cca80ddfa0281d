package scraper

// Shortener maps a link-shortener domain to the merchant it always points at.
type Shortener struct {
	Domain   string
	Merchant string
}

// Config drives merchant link extraction. Every list is ordered; the first
// match wins wherever a lookup returns a value.
type Config struct {
	ContentSelectors  []string
	IgnoredSelectors  []string
	SkipPatterns      []string
	NavigationPhrases []string
	DealPhrases       []string
	ContextKeywords   []string
	URLKeywords       []string
	MerchantDomains   []string
	Shorteners        []Shortener
	SiteDomains       []string
	DealAttributes    []string

	// Off-site anchors with more text than this are kept as deal links.
	MinOffsiteText int
	// Fallback content regions need more text than this.
	MinRegionText int
}

func DefaultConfig() *Config {
	return &Config{
		ContentSelectors: []string{
			".blog-content",
			".col-md-6.col-sm-7",
			".entry-content",
			".post-content",
			".content",
			"article .content",
			"main article",
			".single-post-content",
			".post-body",
		},
		IgnoredSelectors: []string{".adthrive-ad"},
		SkipPatterns: []string{
			"smartcanucks.ca", "facebook.com", "twitter.com", "instagram.com",
			"pinterest.com", "youtube.com", "tiktok.com", "linkedin.com",
			"#", "mailto:", "tel:", "javascript:", "void(0)",
			"/deals/", "/coupons/", "/flyers/", "/forum/", "/stores/",
			"amazon.smartcanucks.ca", "deals.smartcanucks.ca",
			"coupons.smartcanucks.ca", "flyers.smartcanucks.ca",
			"forum.smartcanucks.ca", "hotcanadadeals.ca",
		},
		NavigationPhrases: []string{
			"home", "blog", "deals", "coupons", "flyers", "forum", "stores",
			"contact", "about", "privacy", "terms", "subscribe", "newsletter",
			"follow us", "share", "comment", "reply", "more posts",
		},
		DealPhrases: []string{
			"click here", "view offer", "get deal", "shop now", "buy now",
			"order now", "purchase", "download", "get it", "grab it",
			"check it out", "see deal", "view deal", "get this",
			"epic games", "steam", "amazon", "walmart", "best buy",
			"get free", "download free", "claim", "redeem",
			"visit", "go to", "check out", "see more", "learn more",
			"promo code", "coupon", "discount", "save", "sale",
		},
		ContextKeywords: []string{
			"deal", "offer", "promo", "sale", "discount", "free",
			"save", "coupon", "code", "epic games", "steam",
			"amazon", "walmart", "click here", "view",
		},
		URLKeywords: []string{
			"deal", "offer", "promo", "sale", "discount", "coupon",
			"free", "epicgames.com", "steam", "amazon", "walmart",
			"product", "item", "buy", "shop", "store",
		},
		MerchantDomains: []string{
			"amazon.ca", "amazon.com", "amzn.to",
			"walmart.ca", "walmart.com",
			"bestbuy.ca", "bestbuy.com",
			"canadiantire.ca", "staples.ca", "thebay.com", "sportchek.ca",
			"marks.com", "well.ca", "chapters.indigo.ca", "costco.ca",
			"gap.ca", "oldnavy.ca", "bananarepublic.ca", "lululemon.com",
			"nike.com", "adidas.ca", "newegg.ca", "memoryexpress.com",
			"microsoft.com", "apple.com", "homedepot.ca", "lowes.ca",
			"canadianfreestuff.com", "rakuten.ca", "groupon.ca",

			// Gaming
			"epicgames.com", "store.epicgames.com", "steam.com", "store.steampowered.com",
			"gog.com", "playstation.com", "xbox.com", "nintendo.com", "ubisoft.com",
			"ea.com", "origin.com", "battle.net", "blizzard.com",

			// Restaurants and delivery
			"swisschalet.com", "harveys.ca", "kfc.ca", "mcdonalds.ca", "timhortons.ca",
			"starbucks.ca", "subway.ca", "pizzahut.ca", "dominos.ca",
			"ubereats.com", "doordash.com", "skipthedishes.com",
		},
		Shorteners: []Shortener{
			{Domain: "amzn.to", Merchant: "amazon"},
		},
		SiteDomains:    []string{"smartcanucks.ca", "hotcanadadeals.ca"},
		DealAttributes: []string{"data-deal", "data-offer"},
		MinOffsiteText: 5,
		MinRegionText:  100,
	}
}
