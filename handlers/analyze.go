// ABOUTME: HTTP handler for batch STL analysis via multipart upload
// ABOUTME: Streams uploads to temp files, analyzes in parallel, returns N outcomes

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Bibekdka/3dd/models"
	"github.com/Bibekdka/3dd/services"
)

// maxUploadBytes caps one analyze request (all files together).
const maxUploadBytes = 200 << 20 // 200 MB

// AnalyzeBatch handles multipart STL uploads plus form parameters and
// returns per-file outcomes, batch totals, and a quote. Failed files are
// reported individually and excluded from the totals.
func (h *Handler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, "Invalid multipart request: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		h.writeError(w, "No files uploaded; use multipart field 'files'", http.StatusBadRequest)
		return
	}

	opts, err := h.analyzeOptionsFromForm(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	tmpDir, err := os.MkdirTemp("", "stl-upload-*")
	if err != nil {
		h.writeError(w, "Cannot create upload directory", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	paths := make([]string, 0, len(files))
	// One outcome per uploaded file; rejected names fail up front and
	// skip analysis but still appear in the response.
	prefailed := make(map[string]models.AnalysisOutcome)
	for _, fh := range files {
		if err := services.ValidateMeshFileName(fh.Filename); err != nil {
			prefailed[fh.Filename] = models.AnalysisOutcome{
				FileName:  fh.Filename,
				Error:     err.Error(),
				ErrorKind: models.KindOf(err),
			}
			continue
		}
		dst := filepath.Join(tmpDir, fh.Filename)
		if err := saveUpload(fh, dst); err != nil {
			prefailed[fh.Filename] = models.AnalysisOutcome{
				FileName:  fh.Filename,
				Error:     "cannot store upload: " + err.Error(),
				ErrorKind: models.ErrCollaborator,
			}
			continue
		}
		paths = append(paths, dst)
	}

	analyzed := h.analyzer.AnalyzeBatch(r.Context(), paths, opts)

	// Merge back in original upload order
	byName := make(map[string]models.AnalysisOutcome, len(analyzed))
	for _, o := range analyzed {
		byName[o.FileName] = o
	}
	outcomes := make([]models.AnalysisOutcome, 0, len(files))
	for _, fh := range files {
		if o, ok := prefailed[fh.Filename]; ok {
			outcomes = append(outcomes, o)
			continue
		}
		outcomes = append(outcomes, byName[fh.Filename])
	}

	items := services.SucceededItems(outcomes, nil)
	totals := models.AggregateBatch(items)
	quote := models.Quote(totals.TotalCost, totals.TotalPrintTimeHours, h.defaultRates())

	var warnings []string
	for _, o := range outcomes {
		if !o.Failed() && !o.Record.Watertight {
			warnings = append(warnings, fmt.Sprintf("%s is not watertight; volume may be inaccurate", o.FileName))
		}
	}

	if parseBoolField(r, "save_history", true) && len(items) > 0 {
		details := fmt.Sprintf("%d files, %.1f g, %.2f h", totals.ItemCount, totals.TotalWeightGrams, totals.TotalPrintTimeHours)
		if err := h.ledger.Append(models.EntryBatchAnalysis, fmt.Sprintf("Batch of %d", len(files)), details, quote.FinalPrice); err != nil {
			slog.Warn("History append failed", "error", err)
			warnings = append(warnings, "history write failed: "+err.Error())
		}
	}

	h.writeJSON(w, http.StatusOK, models.AnalyzeResponse{
		Outcomes: outcomes,
		Totals:   totals,
		Quote:    &quote,
		Metadata: models.Metadata{Timestamp: time.Now(), Warnings: warnings},
	})
}

// analyzeOptionsFromForm builds analyzer options from form values,
// falling back to configured defaults, and validates them.
func (h *Handler) analyzeOptionsFromForm(r *http.Request) (services.AnalyzeOptions, error) {
	printer, err := models.LookupPrinter(r.FormValue("printer"))
	if err != nil {
		return services.AnalyzeOptions{}, err
	}

	opts := services.AnalyzeOptions{
		DensityGramsPerCm3: parseFloatField(r, "density", h.cfg.DefaultDensity),
		CostPerKg:          parseFloatField(r, "cost_per_kg", h.cfg.DefaultCostPerKg),
		Slicer: models.SlicerParameters{
			InfillPercent: parseFloatField(r, "infill_percent", h.cfg.DefaultInfillPercent),
			WallPercent:   parseFloatField(r, "wall_percent", h.cfg.DefaultWallPercent),
		},
		Printer:       printer,
		LayerHeightMm: parseFloatField(r, "layer_height_mm", h.cfg.DefaultLayerHeightMm),
	}
	if err := services.ValidateAnalyzeOptions(opts); err != nil {
		return services.AnalyzeOptions{}, err
	}
	return opts, nil
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Close()
}

func parseFloatField(r *http.Request, name string, defaultValue float64) float64 {
	if v := r.FormValue(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func parseBoolField(r *http.Request, name string, defaultValue bool) bool {
	if v := r.FormValue(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}
