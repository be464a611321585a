// ABOUTME: HTTP handler for AI advisory over analysis summaries
// ABOUTME: Short prompts get a canned response without any API call

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type AdviseRequest struct {
	Prompt string `json:"prompt"`
}

// GetAdvice runs the advisory chain over a free-form prompt. The caller
// builds the prompt; typically it is the serialized batch summary.
func (h *Handler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AdviseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		h.writeError(w, "Prompt must not be empty", http.StatusBadRequest)
		return
	}

	// Advisory never fails the request; degraded modes are reported in
	// the payload so callers can render them alongside live analyses.
	advice := h.advisor.Advise(r.Context(), req.Prompt)
	h.writeJSON(w, http.StatusOK, advice)
}
