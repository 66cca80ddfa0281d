package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
)

const publishedLayout = "2006-01-02T15:04:05Z"

// Parser turns raw feed bytes into validated entries.
type Parser struct {
	gofeedParser *gofeed.Parser
}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses RSS, Atom or JSON feed data. Items without a title or link are
// dropped; a feed left with no valid items is an error.
func (p *Parser) Run(data []byte) (*Metadata, []Entry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	if len(feed.Items) == 0 {
		return metadata, nil, ErrNoEntries
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		entry, ok := p.normalizeItem(item)
		if !ok {
			slog.Warn("Skipping entry without title or link", "title", item.Title)
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return metadata, nil, ErrNoValidEntries
	}

	return metadata, entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) (Entry, bool) {
	entry := Entry{
		Title: strings.TrimSpace(item.Title),
		Link:  strings.TrimSpace(item.Link),
	}

	if entry.Title == "" || entry.Link == "" {
		return Entry{}, false
	}

	if item.PublishedParsed != nil {
		entry.Published = item.PublishedParsed.UTC().Format(publishedLayout)
	} else {
		entry.Published = item.Published
	}

	return entry, true
}
