// ABOUTME: HTTP handler wiring for print cost analyzer API endpoints
// ABOUTME: Holds shared services and JSON response helpers

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Bibekdka/3dd/cache"
	"github.com/Bibekdka/3dd/config"
	"github.com/Bibekdka/3dd/models"
	"github.com/Bibekdka/3dd/services"
)

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache
	analyzer *services.Analyzer
	advisor  *services.Advisor
	scraper  *services.Scraper
	ledger   *services.HistoryLedger
}

func NewHandler(cfg *config.Config, c *cache.Cache) *Handler {
	return &Handler{
		cfg:      cfg,
		cache:    c,
		analyzer: services.NewAnalyzer(services.NewSTLLoader()),
		advisor:  services.NewAdvisor(cfg),
		scraper:  services.NewScraper(cfg, c),
		ledger:   services.NewHistoryLedger(cfg.HistoryFile),
	}
}

// defaultRates builds the rate card from config.
func (h *Handler) defaultRates() models.RateCard {
	return models.RateCard{
		MachineRatePerHour:     h.cfg.MachineRatePerHour,
		ElectricityRatePerHour: h.cfg.ElectricityRatePerHour,
		LabourRatePerHour:      h.cfg.LabourRatePerHour,
		ProfitMarginFraction:   h.cfg.ProfitMarginFraction,
		TaxFraction:            h.cfg.TaxFraction,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeDomainError maps a domain error kind to an HTTP status.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch models.KindOf(err) {
	case models.ErrInput:
		code = http.StatusBadRequest
	case models.ErrComputation:
		code = http.StatusUnprocessableEntity
	case models.ErrCollaborator:
		code = http.StatusBadGateway
	}
	h.writeError(w, err.Error(), code)
}
