// ABOUTME: HTTP handler for model-page scraping with optional AI advisory
// ABOUTME: Successful scrapes are appended to the history ledger

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bibekdka/3dd/models"
	"github.com/Bibekdka/3dd/services"
)

type ScrapeRequest struct {
	URL    string `json:"url"`
	Advise bool   `json:"advise,omitempty"`
}

type ScrapeResponse struct {
	Result    models.ScrapeResult `json:"result"`
	Advice    *models.Advice      `json:"advice,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// ScrapePage fetches a model listing page, extracts its text, images,
// and STL links, and optionally runs the advisory chain over the text.
func (h *Handler) ScrapePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := services.ValidateScrapeURL(req.URL); err != nil {
		h.writeDomainError(w, err)
		return
	}

	result, err := h.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	resp := ScrapeResponse{Result: result, Timestamp: time.Now()}
	if req.Advise {
		advice := h.advisor.Advise(r.Context(), services.ScrapePrompt(result))
		resp.Advice = &advice
	}

	details := fmt.Sprintf("%d images, %d STL links", len(result.Images), len(result.STLLinks))
	name := result.Title
	if name == "" {
		name = result.URL
	}
	if err := h.ledger.Append(models.EntryLinkScrape, name, details, 0); err != nil {
		slog.Warn("History append failed", "error", err)
	}

	h.writeJSON(w, http.StatusOK, resp)
}
