package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/deal-comb/app/web"
)

// Source fetches a feed over HTTP and parses it.
type Source struct {
	fetcher *web.Fetcher
	parser  *Parser
}

// NewSource creates a new feed source
func NewSource(fetcher *web.Fetcher, parser *Parser) *Source {
	return &Source{
		fetcher: fetcher,
		parser:  parser,
	}
}

// Run fetches and parses feedURL. Every failure is returned as *Error.
func (s *Source) Run(ctx context.Context, feedURL string) (*Metadata, []Entry, error) {
	slog.Info("Fetching feed", "url", feedURL)

	page, err := s.fetcher.Get(ctx, feedURL)
	if err != nil {
		var statusErr *web.StatusError
		if errors.As(err, &statusErr) {
			return nil, nil, &Error{URL: feedURL, Status: statusErr.StatusCode, Message: statusMessage(statusErr.StatusCode), Err: err}
		}
		return nil, nil, &Error{URL: feedURL, Message: fmt.Sprintf("URL Error: %v", err), Err: err}
	}

	metadata, entries, err := s.parser.Run(page.Body)
	if err != nil {
		if errors.Is(err, ErrNoEntries) || errors.Is(err, ErrNoValidEntries) {
			return nil, nil, &Error{URL: feedURL, Status: page.StatusCode, Message: err.Error(), Err: err}
		}
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		return nil, nil, &Error{URL: feedURL, Status: page.StatusCode, Message: fmt.Sprintf("Failed to parse feed: %v", cause), Err: err}
	}

	slog.Info("Feed parsed", "url", feedURL, "title", metadata.Title, "entries", len(entries))

	return metadata, entries, nil
}

// Convert runs the feed and wraps the entries in the output document.
func (s *Source) Convert(ctx context.Context, feedURL string) (*Document, error) {
	_, entries, err := s.Run(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	return &Document{
		FeedURL: feedURL,
		Updated: time.Now().UTC().Format(time.RFC3339),
		Entries: entries,
	}, nil
}
