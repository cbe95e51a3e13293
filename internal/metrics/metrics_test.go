package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCollector_ObserveSearch(t *testing.T) {
	c := New()
	c.ObserveSearch("search", 2*time.Millisecond, 3, 49)
	c.ObserveSearch("search", time.Millisecond, 0, 0)
	c.ObserveSearch("chat", time.Millisecond, 0, 0)
	c.SetCorpusSize(24)

	body := scrape(t, c)
	assert.Contains(t, body, `faq_searches_total{outcome="matched",source="search"} 1`)
	assert.Contains(t, body, `faq_searches_total{outcome="no_match",source="search"} 1`)
	assert.Contains(t, body, `faq_searches_total{outcome="no_match",source="chat"} 1`)
	assert.Contains(t, body, `faq_top_score_count 1`)
	assert.Contains(t, body, `faq_corpus_size 24`)
	assert.Contains(t, body, `faq_search_duration_seconds_count{source="search"} 2`)
}

func TestCollector_ObserveRequest(t *testing.T) {
	c := New()
	c.ObserveRequest(http.MethodPost, "/search", 200, 5*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "", 404, time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `faq_http_requests_total{method="POST",route="/search",status="200"} 1`)
	assert.Contains(t, body, `faq_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveSearch("search", time.Millisecond, 1, 10)
		c.SetCorpusSize(3)
		c.ObserveRequest(http.MethodGet, "/health", 200, time.Millisecond)
	})
}

func TestNew_Independent(t *testing.T) {
	a, b := New(), New()
	a.SetCorpusSize(5)
	assert.Contains(t, scrape(t, a), "faq_corpus_size 5")
	assert.Contains(t, scrape(t, b), "faq_corpus_size 0")
}
