// ABOUTME: HTTP handler for quotation from previously analyzed parts
// ABOUTME: Accepts records with quantities plus optional rate overrides

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Bibekdka/3dd/models"
)

// QuoteRequest carries analyzed parts, per-part quantities, and optional
// overrides for individual rate card fields. Zero-valued overrides keep
// the configured default.
type QuoteRequest struct {
	Items []models.BatchItem `json:"items"`
	Rates *RateOverrides     `json:"rates,omitempty"`
}

type RateOverrides struct {
	MachineRatePerHour     *float64 `json:"machine_rate_per_hour,omitempty"`
	ElectricityRatePerHour *float64 `json:"electricity_rate_per_hour,omitempty"`
	LabourRatePerHour      *float64 `json:"labour_rate_per_hour,omitempty"`
	ProfitMarginFraction   *float64 `json:"profit_margin_fraction,omitempty"`
	TaxFraction            *float64 `json:"tax_fraction,omitempty"`
}

type QuoteResponse struct {
	Totals    models.BatchTotals    `json:"totals"`
	Rates     models.RateCard       `json:"rates"`
	Quote     models.QuoteBreakdown `json:"quote"`
	Timestamp time.Time             `json:"timestamp"`
}

// GetQuote recomputes batch totals from the submitted items and prices
// them with the effective rate card.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		h.writeError(w, "No items to quote", http.StatusBadRequest)
		return
	}
	for _, it := range req.Items {
		if it.Record.EffectiveVolumeCm3 < 0 || it.Record.WeightGrams < 0 || it.Record.Cost < 0 || it.Record.PrintTimeHours < 0 {
			h.writeError(w, "Item fields must be non-negative", http.StatusBadRequest)
			return
		}
	}

	rates := h.defaultRates()
	if req.Rates != nil {
		applyOverride(&rates.MachineRatePerHour, req.Rates.MachineRatePerHour)
		applyOverride(&rates.ElectricityRatePerHour, req.Rates.ElectricityRatePerHour)
		applyOverride(&rates.LabourRatePerHour, req.Rates.LabourRatePerHour)
		applyOverride(&rates.ProfitMarginFraction, req.Rates.ProfitMarginFraction)
		applyOverride(&rates.TaxFraction, req.Rates.TaxFraction)
	}
	if rates.ProfitMarginFraction < 0 || rates.TaxFraction < 0 {
		h.writeError(w, "Margin and tax fractions must be non-negative", http.StatusBadRequest)
		return
	}

	totals := models.AggregateBatch(req.Items)
	quote := models.Quote(totals.TotalCost, totals.TotalPrintTimeHours, rates)

	h.writeJSON(w, http.StatusOK, QuoteResponse{
		Totals:    totals,
		Rates:     rates,
		Quote:     quote,
		Timestamp: time.Now(),
	})
}

func applyOverride(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
