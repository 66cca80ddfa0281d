package feed

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoEntries      = errors.New("No entries found in feed")
	ErrNoValidEntries = errors.New("No valid entries found (missing title or link)")
)

// Error is a feed-level failure. It aborts processing of that feed only.
type Error struct {
	URL     string
	Status  int
	Message string
	Err     error
}

// Error formats the failure with the feed URL.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func statusMessage(status int) string {
	switch status {
	case 404:
		return "Feed not found (404)"
	case 403:
		return "Access forbidden (403)"
	case 500:
		return "Server error (500)"
	default:
		return fmt.Sprintf("HTTP error %d", status)
	}
}

// ValidateURL rejects anything that is not an http(s) URL.
func ValidateURL(feedURL string) error {
	if !strings.HasPrefix(feedURL, "http://") && !strings.HasPrefix(feedURL, "https://") {
		return fmt.Errorf("Invalid URL format: %s", feedURL)
	}
	return nil
}
