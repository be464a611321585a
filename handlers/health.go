// ABOUTME: HTTP handlers for health and printer catalog endpoints
// ABOUTME: Provides API status and the static printer profile list

package handlers

import (
	"net/http"

	"github.com/Bibekdka/3dd/models"
)

// Health returns API health status including AI and ledger configuration.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":       "ok",
		"ai_advisory":  "not_configured",
		"history_file": h.cfg.HistoryFile,
	}
	if h.cfg.AIConfigured() {
		resp["ai_advisory"] = "ok"
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetPrinters returns the printer profile catalog.
func (h *Handler) GetPrinters(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"printers": models.PrinterProfiles(),
		"default":  models.DefaultPrinterName,
	})
}
