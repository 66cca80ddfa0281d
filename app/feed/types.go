package feed

// Entry is a validated feed item: title and link are never empty.
type Entry struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}

// Metadata describes the feed itself rather than its items.
type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Document is the JSON written by the feed conversion.
type Document struct {
	FeedURL string  `json:"feed_url"`
	Updated string  `json:"updated"`
	Entries []Entry `json:"entries"`
}
