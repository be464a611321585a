// ABOUTME: HTTP handler for PDF report export
// ABOUTME: Renders submitted key/value rows into a downloadable document

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Bibekdka/3dd/services"
)

type ReportRequest struct {
	Title string               `json:"title"`
	Rows  []services.ReportRow `json:"rows"`
}

// ExportReport renders the submitted rows as a PDF and streams it back
// as an attachment.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = "Print Cost Report"
	}
	if len(req.Rows) == 0 {
		h.writeError(w, "No rows to export", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := services.ExportPDF(&buf, req.Title, req.Rows); err != nil {
		h.writeError(w, "PDF generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="print-cost-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
