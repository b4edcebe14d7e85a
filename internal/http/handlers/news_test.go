package handlers

import (
	"net/http"
	"testing"

	domainnews "github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/testutil"
)

func TestNewsReportsCacheMissThenHit(t *testing.T) {
	p := &testutil.StaticProvider{Articles: map[string][]domainnews.Article{
		"wnba": {testutil.SampleArticle("wnba", "a1", "2024-07-01T10:00:00Z")},
		"nwsl": {testutil.SampleArticle("nwsl", "b1", "2024-07-02T10:00:00Z")},
	}}
	h := newTestHandler(p)

	rr := testutil.Serve(http.HandlerFunc(h.News), http.MethodGet, "/api/news", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertHeader(t, rr, "X-Cache", "MISS")

	var payload domainnews.Payload
	testutil.DecodeJSON(t, rr, &payload)
	if len(payload.Articles) != 2 || payload.Articles[0].ID != "b1" {
		t.Fatalf("expected newest first, got %+v", payload.Articles)
	}
	if payload.RefreshInterval != 300 {
		t.Fatalf("unexpected refresh interval %d", payload.RefreshInterval)
	}

	rr = testutil.Serve(http.HandlerFunc(h.News), http.MethodGet, "/api/news", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertHeader(t, rr, "X-Cache", "HIT")
}

func TestNewsWithoutServiceIsUnavailable(t *testing.T) {
	rr := testutil.Serve(http.HandlerFunc(NewHandler(Deps{}).News), http.MethodGet, "/api/news", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
