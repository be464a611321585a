// ABOUTME: HTTP handlers for the CSV history ledger
// ABOUTME: GET lists entries newest-first, DELETE clears the ledger

package handlers

import (
	"net/http"
	"time"

	"github.com/Bibekdka/3dd/models"
)

type HistoryResponse struct {
	Entries   []models.HistoryEntry `json:"entries"`
	Count     int                   `json:"count"`
	Timestamp time.Time             `json:"timestamp"`
}

// History serves the ledger. GET returns all entries newest first;
// DELETE rewrites the file down to its header row.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := h.ledger.LoadAll()
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		// Stored oldest-first; reverse for display
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
		h.writeJSON(w, http.StatusOK, HistoryResponse{
			Entries:   entries,
			Count:     len(entries),
			Timestamp: time.Now(),
		})
	case http.MethodDelete:
		if err := h.ledger.Clear(); err != nil {
			h.writeDomainError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
