package services

import (
	"strings"
	"testing"

	"github.com/Bibekdka/3dd/models"
)

func TestValidatePercent(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"hundred", 100, false},
		{"middle", 42.5, false},
		{"negative", -1, true},
		{"over", 100.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePercent("infill_percent", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePercent(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && models.KindOf(err) != models.ErrInput {
				t.Errorf("Expected input error kind, got %q", models.KindOf(err))
			}
		})
	}
}

func TestValidateAnalyzeOptions(t *testing.T) {
	valid := defaultOptions()
	if err := ValidateAnalyzeOptions(valid); err != nil {
		t.Fatalf("Expected valid options to pass, got %v", err)
	}

	bad := valid
	bad.Slicer.InfillPercent = 150
	if err := ValidateAnalyzeOptions(bad); err == nil {
		t.Error("Expected error for infill over 100")
	}

	bad = valid
	bad.DensityGramsPerCm3 = 0
	if err := ValidateAnalyzeOptions(bad); err == nil {
		t.Error("Expected error for zero density")
	}

	bad = valid
	bad.CostPerKg = -1
	if err := ValidateAnalyzeOptions(bad); err == nil {
		t.Error("Expected error for negative cost")
	}

	bad = valid
	bad.LayerHeightMm = 0
	if err := ValidateAnalyzeOptions(bad); err == nil {
		t.Error("Expected error for zero layer height")
	}
}

func TestValidateScrapeURL(t *testing.T) {
	if err := ValidateScrapeURL("https://www.printables.com/model/1"); err != nil {
		t.Errorf("Expected https URL to pass, got %v", err)
	}
	if err := ValidateScrapeURL("ftp://example.com"); err == nil {
		t.Error("Expected ftp scheme rejected")
	}
	if err := ValidateScrapeURL("https://"); err == nil {
		t.Error("Expected hostless URL rejected")
	}
	if err := ValidateScrapeURL("::not a url::"); err == nil {
		t.Error("Expected unparsable URL rejected")
	}
}

func TestValidateMeshFileName(t *testing.T) {
	if err := ValidateMeshFileName("benchy.stl"); err != nil {
		t.Errorf("Expected benchy.stl to pass, got %v", err)
	}
	if err := ValidateMeshFileName("BENCHY.STL"); err != nil {
		t.Errorf("Expected upper-case extension to pass, got %v", err)
	}
	if err := ValidateMeshFileName("../../etc/passwd.stl"); err == nil {
		t.Error("Expected path traversal rejected")
	}
	if err := ValidateMeshFileName("model.obj"); err == nil {
		t.Error("Expected non-STL extension rejected")
	}
	if err := ValidateMeshFileName(""); err == nil {
		t.Error("Expected empty name rejected")
	}
}

func TestSanitizeForLog(t *testing.T) {
	got := sanitizeForLog("bad\nname\x00with\tcontrol")
	if strings.ContainsAny(got, "\n\x00\t") {
		t.Errorf("Expected control characters stripped, got %q", got)
	}
}
