package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Bibekdka/3dd/cache"
	"github.com/Bibekdka/3dd/config"
	"github.com/Bibekdka/3dd/models"
)

const testPage = `<!DOCTYPE html>
<html><head>
<title>Fallback Title</title>
<meta property="og:title" content="Benchy Test Boat">
<script type="application/ld+json">{"@type":"3DModel","name":"3DBenchy"}</script>
</head><body>
<p>This little boat is the standard calibration print for every new printer setup.</p>
<p>Printed great at 0.2 mm layer height with 15% gyroid infill and no supports needed.</p>
<p>short</p>
<p>Please accept our cookie policy before continuing to browse this website today.</p>
<img src="https://cdn.example.com/benchy-photo-large.jpg">
<img src="https://cdn.example.com/user-avatar.png">
<img src="/relative/boat-side-view.jpg">
<a href="/files/benchy.stl">Download</a>
<a href="https://cdn.example.com/benchy-hull.STL">Mirror</a>
<a href="/about">About</a>
</body></html>`

func testScraper(t *testing.T, handler http.Handler) (*Scraper, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ScrapeTimeout:   5,
		ScrapeUserAgent: "test-agent",
		ScrapeMaxImages: 5,
		ScrapeMaxBytes:  50000,
		ScrapeTTL:       3600,
	}
	return NewScraper(cfg, cache.New(time.Minute)), srv
}

func TestScrape_ExtractsContent(t *testing.T) {
	s, srv := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("Expected configured user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(testPage))
	}))

	result, err := s.Scrape(context.Background(), srv.URL+"/model/123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Title != "3DBenchy" {
		t.Errorf("Expected JSON-LD title 3DBenchy, got %q", result.Title)
	}
	if !strings.Contains(result.Text, "standard calibration print") {
		t.Error("Expected useful line kept in text")
	}
	if strings.Contains(result.Text, "short") {
		t.Error("Expected short line dropped")
	}
	if strings.Contains(strings.ToLower(result.Text), "cookie") {
		t.Error("Expected boilerplate line dropped")
	}

	if len(result.Images) != 2 {
		t.Fatalf("Expected 2 images (avatar excluded), got %v", result.Images)
	}
	for _, img := range result.Images {
		if strings.Contains(img, "avatar") {
			t.Errorf("Expected avatar excluded, got %s", img)
		}
		if !strings.HasPrefix(img, "http") {
			t.Errorf("Expected absolute image URL, got %s", img)
		}
	}

	if len(result.STLLinks) != 2 {
		t.Fatalf("Expected 2 STL links, got %v", result.STLLinks)
	}
}

func TestScrape_ImageCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		sb.WriteString(`<img src="https://cdn.example.com/photo-` + string(rune('a'+i)) + `.jpg">`)
	}
	sb.WriteString("</body></html>")

	s, srv := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sb.String()))
	}))

	result, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Images) != 5 {
		t.Errorf("Expected image list capped at 5, got %d", len(result.Images))
	}
}

func TestScrape_CachesByURL(t *testing.T) {
	var hits int32
	s, srv := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(testPage))
	}))

	url := srv.URL + "/model/9"
	if _, err := s.Scrape(context.Background(), url); err != nil {
		t.Fatalf("First scrape failed: %v", err)
	}
	if _, err := s.Scrape(context.Background(), url); err != nil {
		t.Fatalf("Second scrape failed: %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected 1 upstream fetch (second served from cache), got %d", hits)
	}
}

func TestScrape_HTTPErrorIsCollaboratorError(t *testing.T) {
	s, srv := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))

	_, err := s.Scrape(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected error for 403 response")
	}
	if models.KindOf(err) != models.ErrCollaborator {
		t.Errorf("Expected collaborator error kind, got %q", models.KindOf(err))
	}
}

func TestScrape_BadURLIsInputError(t *testing.T) {
	s, _ := testScraper(t, http.NewServeMux())

	_, err := s.Scrape(context.Background(), "ftp://example.com/model")
	if err == nil {
		t.Fatal("Expected error for non-http URL")
	}
	if models.KindOf(err) != models.ErrInput {
		t.Errorf("Expected input error kind, got %q", models.KindOf(err))
	}
}

func TestDetectDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.printables.com/model/3161-3d-benchy", "printables.com"},
		{"https://makerworld.com/en/models/12345", "makerworld.com"},
		{"https://www.thingiverse.com/thing:763622", "thingiverse.com"},
		{"https://thangs.com/designer/x/3d-model/y", "thangs.com"},
		{"https://example.com/some/model", "generic"},
	}
	for _, tt := range tests {
		if got := DetectDomain(tt.url); got != tt.want {
			t.Errorf("DetectDomain(%s) = %s, want %s", tt.url, got, tt.want)
		}
	}
}
