// ABOUTME: Input validation for analysis parameters and scrape URLs
// ABOUTME: Range enforcement lives here, not inside the calculation functions

package services

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Bibekdka/3dd/models"
)

// sanitizeForLog removes control characters from strings to prevent log
// injection when including user input in error messages.
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// ValidatePercent checks that a named percentage is within [0,100].
// EffectiveVolume itself does not validate; this is the caller-side gate.
func ValidatePercent(name string, value float64) error {
	if value < 0 || value > 100 {
		return models.NewInputError("validate.percent", fmt.Sprintf("%s must be in [0,100], got %v", name, value), nil)
	}
	return nil
}

// ValidateAnalyzeOptions checks the full option set before a batch run.
func ValidateAnalyzeOptions(opts AnalyzeOptions) error {
	if err := ValidatePercent("infill_percent", opts.Slicer.InfillPercent); err != nil {
		return err
	}
	if err := ValidatePercent("wall_percent", opts.Slicer.WallPercent); err != nil {
		return err
	}
	if opts.DensityGramsPerCm3 <= 0 {
		return models.NewInputError("validate.options", fmt.Sprintf("density must be positive, got %v", opts.DensityGramsPerCm3), nil)
	}
	if opts.CostPerKg < 0 {
		return models.NewInputError("validate.options", fmt.Sprintf("cost per kg cannot be negative, got %v", opts.CostPerKg), nil)
	}
	if opts.LayerHeightMm <= 0 {
		return models.NewInputError("validate.options", fmt.Sprintf("layer height must be positive, got %v", opts.LayerHeightMm), nil)
	}
	return nil
}

// ValidateScrapeURL checks that a scrape target is an absolute http(s)
// URL with a host.
func ValidateScrapeURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return models.NewInputError("validate.url", fmt.Sprintf("invalid URL %q", sanitizeForLog(rawURL)), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return models.NewInputError("validate.url", fmt.Sprintf("URL scheme must be http or https, got %q", sanitizeForLog(u.Scheme)), nil)
	}
	if u.Host == "" {
		return models.NewInputError("validate.url", fmt.Sprintf("URL %q has no host", sanitizeForLog(rawURL)), nil)
	}
	return nil
}

// ValidateMeshFileName checks that an uploaded file name looks like an
// STL and carries no path components.
func ValidateMeshFileName(name string) error {
	if name == "" {
		return models.NewInputError("validate.file", "file name cannot be empty", nil)
	}
	if filepath.Base(name) != name {
		return models.NewInputError("validate.file", fmt.Sprintf("file name %q must not contain path separators", sanitizeForLog(name)), nil)
	}
	if !strings.EqualFold(filepath.Ext(name), ".stl") {
		return models.NewInputError("validate.file", fmt.Sprintf("unsupported file type %q, expected .stl", sanitizeForLog(filepath.Ext(name))), nil)
	}
	return nil
}
