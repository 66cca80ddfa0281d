package affiliate

const maxRedirectTitle = 100

// RedirectLink builds a click-tracking link on the configured redirect host that
// forwards to target. Returns "" when affiliate handling or click tracking is off.
func (c *Config) RedirectLink(target, title string) string {
	if !c.Enabled || !c.TrackClicks || c.RedirectDomain == "" {
		return ""
	}

	if runes := []rune(title); len(runes) > maxRedirectTitle {
		title = string(runes[:maxRedirectTitle])
	}

	q := query{}.
		add("url", target).
		add("source", "rss_feed").
		add("title", title)

	if c.AddUTMParams {
		for _, p := range c.UTM {
			q = q.set(p.Key, p.Value)
		}
	}

	return "https://" + c.RedirectDomain + c.RedirectPath + "?" + q.encode()
}
