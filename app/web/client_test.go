package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func TestNewClientUsesOtelTransport(t *testing.T) {
	client := NewClient(5 * time.Second)

	if _, ok := client.Transport.(*otelhttp.Transport); !ok {
		t.Error("Expected HTTP client transport to be *otelhttp.Transport")
	}
	if client.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", client.Timeout)
	}
	if NewClient(0).Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout for zero value")
	}
}

func TestFetcherGet(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(NewClient(time.Second), "")
	page, err := fetcher.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if string(page.Body) != "<html>ok</html>" {
		t.Errorf("Expected body '<html>ok</html>', got '%s'", page.Body)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("Expected default user agent, got '%s'", gotUA)
	}
}

func TestFetcherStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(NewClient(time.Second), "test-agent")
	_, err := fetcher.Get(context.Background(), server.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", statusErr.StatusCode)
	}
	if statusErr.Error() != "HTTP error: 403 Forbidden" {
		t.Errorf("Expected 'HTTP error: 403 Forbidden', got '%s'", statusErr.Error())
	}
}
