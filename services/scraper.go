// ABOUTME: Model-page scraper extracting text, images, and STL links
// ABOUTME: Results are cached by URL with TTL and deduplicated in flight

package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/Bibekdka/3dd/cache"
	"github.com/Bibekdka/3dd/config"
	"github.com/Bibekdka/3dd/models"
)

// supportedDomains are the model-sharing sites with known page layouts.
// Anything else is scraped with the generic heuristics.
var supportedDomains = []string{
	"printables.com",
	"makerworld.com",
	"thingiverse.com",
	"thangs.com",
}

// boilerplateMarkers flags lines that carry no model information.
var boilerplateMarkers = []string{
	"cookie", "privacy", "login", "sign up",
	"terms", "copyright", "javascript", "browser",
}

const (
	minUsefulLineLen = 30
	maxUsefulLines   = 500
)

// Scraper fetches and normalizes third-party model pages.
type Scraper struct {
	client    *http.Client
	cache     *cache.Cache
	group     singleflight.Group
	userAgent string
	maxImages int
	maxBytes  int
	cacheTTL  time.Duration
}

func NewScraper(cfg *config.Config, c *cache.Cache) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: time.Duration(cfg.ScrapeTimeout) * time.Second,
		},
		cache:     c,
		userAgent: cfg.ScrapeUserAgent,
		maxImages: cfg.ScrapeMaxImages,
		maxBytes:  cfg.ScrapeMaxBytes,
		cacheTTL:  time.Duration(cfg.ScrapeTTL) * time.Second,
	}
}

// DetectDomain returns the supported domain matching rawURL, or "generic".
func DetectDomain(rawURL string) string {
	for _, d := range supportedDomains {
		if strings.Contains(rawURL, d) {
			return d
		}
	}
	return "generic"
}

// Scrape fetches pageURL and extracts text, images, and STL download
// links. Results are cached by URL; concurrent scrapes of the same URL
// share one fetch.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (models.ScrapeResult, error) {
	if err := ValidateScrapeURL(pageURL); err != nil {
		return models.ScrapeResult{}, err
	}

	cacheKey := "scrape:" + pageURL
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(models.ScrapeResult), nil
	}

	v, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		result, err := s.fetch(ctx, pageURL)
		if err != nil {
			return models.ScrapeResult{}, err
		}
		s.cache.SetWithTTL(cacheKey, result, s.cacheTTL)
		return result, nil
	})
	if err != nil {
		return models.ScrapeResult{}, err
	}
	return v.(models.ScrapeResult), nil
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (models.ScrapeResult, error) {
	var debug []string
	domain := DetectDomain(pageURL)
	debug = append(debug, "domain: "+domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return models.ScrapeResult{}, models.NewCollaboratorError("scrape.fetch", "invalid request", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return models.ScrapeResult{}, models.NewCollaboratorError("scrape.fetch", fmt.Sprintf("request to %s failed", pageURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ScrapeResult{}, models.NewCollaboratorError("scrape.fetch", fmt.Sprintf("page returned status %d", resp.StatusCode), nil)
	}
	debug = append(debug, "page loaded")

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.ScrapeResult{}, models.NewCollaboratorError("scrape.parse", "cannot parse HTML", err)
	}

	result := models.ScrapeResult{
		URL:      pageURL,
		Domain:   domain,
		Title:    extractTitle(doc),
		Text:     s.extractText(doc),
		Images:   s.extractImages(doc, pageURL),
		STLLinks: extractSTLLinks(doc, pageURL),
		DebugLog: debug,
	}
	return result, nil
}

// extractTitle prefers JSON-LD name, then og:title, then <title>.
func extractTitle(doc *goquery.Document) string {
	var title string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if name := gjson.Get(sel.Text(), "name"); name.Exists() && name.String() != "" {
			title = name.String()
			return false
		}
		return true
	})
	if title != "" {
		return title
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return og
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractText keeps lines long enough to be informative, drops
// boilerplate, and caps both line count and total bytes so downstream
// prompts stay within token limits.
func (s *Scraper) extractText(doc *goquery.Document) string {
	body := doc.Find("body").Text()

	useful := make([]string, 0, maxUsefulLines)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minUsefulLineLen {
			continue
		}
		lower := strings.ToLower(line)
		skip := false
		for _, marker := range boilerplateMarkers {
			if strings.Contains(lower, marker) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		useful = append(useful, line)
		if len(useful) >= maxUsefulLines {
			break
		}
	}

	text := strings.Join(useful, "\n")
	if len(text) > s.maxBytes {
		text = text[:s.maxBytes]
	}
	return text
}

// extractImages collects absolute image URLs, skipping icons and
// avatars, deduplicated and capped.
func (s *Scraper) extractImages(doc *goquery.Document, pageURL string) []string {
	seen := make(map[string]struct{})
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok {
			src, _ = sel.Attr("data-src")
		}
		src = resolveURL(pageURL, src)
		if src == "" || !strings.HasPrefix(src, "http") {
			return
		}
		if strings.Contains(src, "icon") || strings.Contains(src, "avatar") {
			return
		}
		seen[src] = struct{}{}
	})

	images := make([]string, 0, len(seen))
	for src := range seen {
		images = append(images, src)
	}
	sort.Strings(images)
	if len(images) > s.maxImages {
		images = images[:s.maxImages]
	}
	return images
}

// extractSTLLinks collects deduplicated links ending in .stl.
func extractSTLLinks(doc *goquery.Document, pageURL string) []string {
	seen := make(map[string]struct{})
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = resolveURL(pageURL, href)
		if strings.HasSuffix(strings.ToLower(href), ".stl") {
			seen[href] = struct{}{}
		}
	})

	links := make([]string, 0, len(seen))
	for href := range seen {
		links = append(links, href)
	}
	sort.Strings(links)
	return links
}

// resolveURL makes ref absolute against base; returns "" when unusable.
func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(refURL).String()
}
