package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/deal-comb/app/affiliate"
	"github.com/lysyi3m/deal-comb/app/resolver"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLink(t *testing.T) {
	m := New()

	m.ObserveLink(resolver.SourceDirect, affiliate.OutcomeApplied)
	m.ObserveLink(resolver.SourceFailed, affiliate.OutcomeUnknownMerchant)
	m.ObserveLink(resolver.SourceDirect, affiliate.OutcomeApplied)

	if got := testutil.ToFloat64(m.linksProcessed.WithLabelValues("applied")); got != 2 {
		t.Errorf("Expected 2 applied links, got %v", got)
	}
	if got := testutil.ToFloat64(m.linksProcessed.WithLabelValues("unknown_merchant")); got != 1 {
		t.Errorf("Expected 1 unknown merchant link, got %v", got)
	}
	if got := testutil.ToFloat64(m.resolutions.WithLabelValues("direct")); got != 2 {
		t.Errorf("Expected 2 direct resolutions, got %v", got)
	}
	if got := testutil.ToFloat64(m.resolutions.WithLabelValues("failed")); got != 1 {
		t.Errorf("Expected 1 failed resolution, got %v", got)
	}
}

func TestObservePostAndRun(t *testing.T) {
	m := New()

	m.ObservePost(false)
	m.ObservePost(true)
	m.ObservePost(false)
	m.ObserveRun(false, 3*time.Second)

	if got := testutil.ToFloat64(m.postsScraped.WithLabelValues("success")); got != 2 {
		t.Errorf("Expected 2 scraped posts, got %v", got)
	}
	if got := testutil.ToFloat64(m.postsScraped.WithLabelValues("error")); got != 1 {
		t.Errorf("Expected 1 failed post, got %v", got)
	}
	if got := testutil.ToFloat64(m.feedRuns.WithLabelValues("success")); got != 1 {
		t.Errorf("Expected 1 successful run, got %v", got)
	}
	if got := testutil.CollectAndCount(m.runDuration); got != 1 {
		t.Errorf("Expected run duration histogram to be collected, got %d", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveLink(resolver.SourceFollowed, affiliate.OutcomeMissingTag)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, `dealcomb_links_processed_total{outcome="missing_tag"} 1`) {
		t.Errorf("Expected links counter in exposition, got:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("Expected Go runtime metrics in exposition")
	}
}
