// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.); empty means method-dispatched in the handler
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Catalog
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/printers", Handler: h.GetPrinters},

		// Analysis & Quotation
		{Method: http.MethodPost, Path: "/api/v1/analyze", Handler: h.AnalyzeBatch},
		{Method: http.MethodPost, Path: "/api/v1/quote", Handler: h.GetQuote},

		// Advisory & Scraping
		{Method: http.MethodPost, Path: "/api/v1/advise", Handler: h.GetAdvice},
		{Method: http.MethodPost, Path: "/api/v1/scrape", Handler: h.ScrapePage},

		// History & Export (history dispatches GET/DELETE itself)
		{Path: "/api/v1/history", Handler: h.History},
		{Method: http.MethodPost, Path: "/api/v1/report", Handler: h.ExportReport},
	}
}
