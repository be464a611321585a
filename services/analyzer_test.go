package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/Bibekdka/3dd/models"
)

// fakeLoader serves canned samples or errors by file name.
type fakeLoader struct {
	mu      sync.Mutex
	samples map[string]models.MeshVolumeSample
	errs    map[string]error
	calls   int
}

func (f *fakeLoader) Load(path string) (models.MeshVolumeSample, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err, ok := f.errs[path]; ok {
		return models.MeshVolumeSample{}, err
	}
	if s, ok := f.samples[path]; ok {
		return s, nil
	}
	return models.MeshVolumeSample{}, models.NewInputError("mesh.load", "no such fixture "+path, nil)
}

func defaultOptions() AnalyzeOptions {
	return AnalyzeOptions{
		DensityGramsPerCm3: 1.24,
		CostPerKg:          20,
		Slicer:             models.SlicerParameters{InfillPercent: 20, WallPercent: 25},
		Printer:            models.PrinterProfile{Name: "test", MaxSpeedMmPerSec: 60, NozzleDiameterMm: 0.4},
		LayerHeightMm:      0.2,
	}
}

func TestAnalyzer_SingleFile(t *testing.T) {
	loader := &fakeLoader{samples: map[string]models.MeshVolumeSample{
		"part.stl": {RawVolumeCm3: 100, VertexCount: 8, FaceCount: 12, Watertight: true},
	}}
	a := NewAnalyzer(loader)

	record, err := a.Analyze("part.stl", defaultOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// effective = 100*0.25 + 100*0.75*0.20 = 40
	if math.Abs(record.EffectiveVolumeCm3-40) > 1e-9 {
		t.Errorf("Expected effective volume 40, got %v", record.EffectiveVolumeCm3)
	}
	if math.Abs(record.WeightGrams-49.6) > 1e-9 {
		t.Errorf("Expected weight 49.6 g, got %v", record.WeightGrams)
	}
	// cost = 49.6/1000 * 20 = 0.992
	if math.Abs(record.Cost-0.992) > 1e-9 {
		t.Errorf("Expected cost 0.992, got %v", record.Cost)
	}
	// hours = 40000 / (60*0.2*0.4) / 3600
	wantHours := 40000.0 / 4.8 / 3600
	if math.Abs(record.PrintTimeHours-wantHours) > 1e-9 {
		t.Errorf("Expected %v hours, got %v", wantHours, record.PrintTimeHours)
	}
	if !record.Watertight {
		t.Error("Expected watertight flag carried through")
	}
}

func TestAnalyzer_NonWatertightIsWarningNotError(t *testing.T) {
	loader := &fakeLoader{samples: map[string]models.MeshVolumeSample{
		"leaky.stl": {RawVolumeCm3: 10, VertexCount: 6, FaceCount: 7, Watertight: false},
	}}

	record, err := NewAnalyzer(loader).Analyze("leaky.stl", defaultOptions())
	if err != nil {
		t.Fatalf("Expected leaky mesh to analyze, got %v", err)
	}
	if record.Watertight {
		t.Error("Expected watertight=false on record")
	}
	if record.EffectiveVolumeCm3 <= 0 {
		t.Error("Expected volume still computed for leaky mesh")
	}
}

func TestAnalyzer_ZeroSpeedIsComputationError(t *testing.T) {
	loader := &fakeLoader{samples: map[string]models.MeshVolumeSample{
		"part.stl": {RawVolumeCm3: 10, Watertight: true},
	}}
	opts := defaultOptions()
	opts.Printer.MaxSpeedMmPerSec = 0

	_, err := NewAnalyzer(loader).Analyze("part.stl", opts)
	if err == nil {
		t.Fatal("Expected error for zero printer speed")
	}
	if models.KindOf(err) != models.ErrComputation {
		t.Errorf("Expected computation error kind, got %q", models.KindOf(err))
	}
}

func TestAnalyzeBatch_NOutcomesForNFiles(t *testing.T) {
	loader := &fakeLoader{
		samples: map[string]models.MeshVolumeSample{
			"good1.stl": {RawVolumeCm3: 10, Watertight: true},
			"good2.stl": {RawVolumeCm3: 20, Watertight: true},
		},
		errs: map[string]error{
			"bad.stl": models.NewInputError("mesh.load", "truncated file", nil),
		},
	}

	paths := []string{"good1.stl", "bad.stl", "good2.stl"}
	outcomes := NewAnalyzer(loader).AnalyzeBatch(context.Background(), paths, defaultOptions())

	if len(outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(outcomes))
	}
	// Input order preserved regardless of parallel completion order
	for i, want := range []string{"good1.stl", "bad.stl", "good2.stl"} {
		if outcomes[i].FileName != want {
			t.Errorf("Outcome %d: expected %s, got %s", i, want, outcomes[i].FileName)
		}
	}
	if outcomes[0].Failed() || outcomes[2].Failed() {
		t.Error("Expected good files to succeed")
	}
	if !outcomes[1].Failed() {
		t.Error("Expected bad.stl to fail")
	}
	if outcomes[1].ErrorKind != models.ErrInput {
		t.Errorf("Expected input error kind, got %q", outcomes[1].ErrorKind)
	}
	if !strings.Contains(outcomes[1].Error, "truncated file") {
		t.Errorf("Expected diagnostic message, got %q", outcomes[1].Error)
	}
}

func TestAnalyzeBatch_ManyFilesAllAnalyzed(t *testing.T) {
	samples := make(map[string]models.MeshVolumeSample)
	paths := make([]string, 20)
	for i := range paths {
		name := fmt.Sprintf("part%02d.stl", i)
		samples[name] = models.MeshVolumeSample{RawVolumeCm3: float64(i + 1), Watertight: true}
		paths[i] = name
	}
	loader := &fakeLoader{samples: samples}

	outcomes := NewAnalyzer(loader).AnalyzeBatch(context.Background(), paths, defaultOptions())

	if loader.calls != 20 {
		t.Errorf("Expected 20 loader calls, got %d", loader.calls)
	}
	for i, o := range outcomes {
		if o.Failed() {
			t.Fatalf("Outcome %d failed: %s", i, o.Error)
		}
		if o.FileName != paths[i] {
			t.Errorf("Outcome %d out of order: %s", i, o.FileName)
		}
	}
}

func TestSucceededItems_QuantitiesApplied(t *testing.T) {
	rec := models.AnalysisRecord{FileName: "a.stl", Cost: 10}
	outcomes := []models.AnalysisOutcome{
		{FileName: "a.stl", Record: &rec},
		{FileName: "bad.stl", Error: "boom", ErrorKind: models.ErrInput},
	}

	items := SucceededItems(outcomes, map[string]int{"a.stl": 3})
	if len(items) != 1 {
		t.Fatalf("Expected failed outcome excluded, got %d items", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", items[0].Quantity)
	}

	// Unknown names default to quantity 1
	items = SucceededItems(outcomes, nil)
	if items[0].Quantity != 1 {
		t.Errorf("Expected default quantity 1, got %d", items[0].Quantity)
	}
}
