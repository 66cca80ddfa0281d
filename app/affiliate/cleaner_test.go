package affiliate

import (
	"net/url"
	"testing"
)

func TestCleanerRemovesTrackingParams(t *testing.T) {
	cleaner := NewCleaner(DefaultConfig())

	result := cleaner.Run("https://www.amazon.ca/dp/B08N5WRWNW?tag=old-20&ref=xyz")

	if result.Err != nil {
		t.Fatalf("Expected no error, got: %v", result.Err)
	}
	if result.URL != "https://www.amazon.ca/dp/B08N5WRWNW" {
		t.Errorf("Expected cleaned URL without query, got: %s", result.URL)
	}
	if len(result.Removed) != 2 {
		t.Errorf("Expected 2 removed params, got: %v", result.Removed)
	}
}

func TestCleanerDeniedKeysNeverSurvive(t *testing.T) {
	cleaner := NewCleaner(DefaultConfig())

	for _, key := range DefaultConfig().DeniedParams {
		raw := "https://shop.example.com/item?id=42&" + url.QueryEscape(key) + "=value"
		cleaned := cleaner.Clean(raw)

		u, err := url.Parse(cleaned)
		if err != nil {
			t.Fatalf("Expected parseable URL for key %s, got error: %v", key, err)
		}
		if u.Query().Has(key) {
			t.Errorf("Expected key %s to be removed, got: %s", key, cleaned)
		}
		if u.Query().Get("id") != "42" {
			t.Errorf("Expected id=42 to survive for key %s, got: %s", key, cleaned)
		}
	}
}

func TestCleanerCaseInsensitive(t *testing.T) {
	cleaner := NewCleaner(DefaultConfig())

	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.amazon.com/dp/B000000000?linkCode=ll1&keep=1", "https://www.amazon.com/dp/B000000000?keep=1"},
		{"https://example.com/?UTM_Source=news&x=1", "https://example.com/?x=1"},
		{"https://example.com/?GCLID_extra=abc", "https://example.com/"},
		{"https://example.com/p?_hsenc=abc&ga_session=1&page=2", "https://example.com/p?page=2"},
	}

	for _, test := range tests {
		result := cleaner.Clean(test.input)
		if result != test.expected {
			t.Errorf("Clean(%s): expected %s, got %s", test.input, test.expected, result)
		}
	}
}

func TestCleanerPreservesFragmentAndOrder(t *testing.T) {
	cleaner := NewCleaner(DefaultConfig())

	result := cleaner.Clean("https://example.com/a/b?z=1&utm_medium=x&a=2#section")
	expected := "https://example.com/a/b?z=1&a=2#section"

	if result != expected {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestCleanerIdempotent(t *testing.T) {
	cleaner := NewCleaner(DefaultConfig())

	inputs := []string{
		"https://example.com/p?b=2&a=1#frag",
		"https://example.com/search?q=hello%20world&empty=",
		"https://www.walmart.ca/en/ip/thing/123?athbdg=L1600&selectedSellerId=0&color=red",
		"https://example.com/",
		"https://example.com/?",
	}

	for _, input := range inputs {
		once := cleaner.Clean(input)
		twice := cleaner.Clean(once)
		if once != twice {
			t.Errorf("Expected cleaning to be idempotent for %s: once=%s twice=%s", input, once, twice)
		}
	}

	clean := "https://example.com/p?b=2&a=1#frag"
	if got := cleaner.Clean(clean); got != clean {
		t.Errorf("Expected already clean URL to be unchanged, got %s", got)
	}
}

func TestCleanerFailOpen(t *testing.T) {
	cleaner := NewCleaner(DefaultConfig())

	input := "http://[::1]:namedport/?utm_source=x"
	result := cleaner.Run(input)

	if result.Err == nil {
		t.Errorf("Expected parse error for %s", input)
	}
	if result.URL != input {
		t.Errorf("Expected original URL on failure, got %s", result.URL)
	}
}
