// ABOUTME: Per-file mesh analyzer orchestrating volume, time, weight, and cost
// ABOUTME: Batch analysis runs files in parallel; N files always yield N outcomes

package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Bibekdka/3dd/models"
)

// maxAnalyzeWorkers bounds parallel mesh loads in a batch.
const maxAnalyzeWorkers = 4

// AnalyzeOptions carries the material, slicer, and printer settings for
// one analysis run. All files in a batch share the same options.
type AnalyzeOptions struct {
	DensityGramsPerCm3 float64
	CostPerKg          float64
	Slicer             models.SlicerParameters
	Printer            models.PrinterProfile
	LayerHeightMm      float64
}

// Analyzer turns mesh files into analysis records.
type Analyzer struct {
	loader MeshLoader
}

func NewAnalyzer(loader MeshLoader) *Analyzer {
	return &Analyzer{loader: loader}
}

// Analyze inspects one mesh file and produces an analysis record, or a
// typed error. Geometry failures never propagate as faults past this
// boundary; a non-watertight mesh is flagged on the record, not rejected.
func (a *Analyzer) Analyze(path string, opts AnalyzeOptions) (models.AnalysisRecord, error) {
	if opts.DensityGramsPerCm3 <= 0 {
		return models.AnalysisRecord{}, models.NewComputationError("analyze", fmt.Sprintf("density must be positive, got %v", opts.DensityGramsPerCm3))
	}

	sample, err := a.loader.Load(path)
	if err != nil {
		return models.AnalysisRecord{}, err
	}

	effective := models.EffectiveVolume(sample.RawVolumeCm3, opts.Slicer.InfillPercent, opts.Slicer.WallPercent)

	hours, err := models.PrintTimeHours(effective, opts.LayerHeightMm, opts.Printer.MaxSpeedMmPerSec, opts.Printer.NozzleDiameterMm)
	if err != nil {
		return models.AnalysisRecord{}, err
	}

	weight := effective * opts.DensityGramsPerCm3
	cost := (weight / 1000) * opts.CostPerKg

	return models.AnalysisRecord{
		FileName:           filepath.Base(path),
		RawVolumeCm3:       sample.RawVolumeCm3,
		EffectiveVolumeCm3: effective,
		WeightGrams:        weight,
		Cost:               cost,
		PrintTimeHours:     hours,
		VertexCount:        sample.VertexCount,
		FaceCount:          sample.FaceCount,
		Watertight:         sample.Watertight,
	}, nil
}

// AnalyzeBatch analyzes files in parallel and returns one outcome per
// file, in input order. Individual failures become error outcomes; the
// batch itself never fails except on context cancellation.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, paths []string, opts AnalyzeOptions) []models.AnalysisOutcome {
	outcomes := make([]models.AnalysisOutcome, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxAnalyzeWorkers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = errorOutcome(path, models.NewCollaboratorError("analyze.batch", "batch canceled", err))
				return nil
			}

			record, err := a.Analyze(path, opts)
			if err != nil {
				slog.Warn("File analysis failed", "path", path, "error", err)
				outcomes[i] = errorOutcome(path, err)
				return nil
			}
			outcomes[i] = models.AnalysisOutcome{FileName: record.FileName, Record: &record}
			return nil
		})
	}

	// Workers report failures as data, never as group errors.
	_ = g.Wait()

	return outcomes
}

func errorOutcome(path string, err error) models.AnalysisOutcome {
	return models.AnalysisOutcome{
		FileName:  filepath.Base(path),
		Error:     err.Error(),
		ErrorKind: models.KindOf(err),
	}
}

// SucceededItems converts successful outcomes into batch items with
// quantities from the given map (keyed by file name, defaulting to 1).
func SucceededItems(outcomes []models.AnalysisOutcome, quantities map[string]int) []models.BatchItem {
	items := make([]models.BatchItem, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Failed() {
			continue
		}
		qty := quantities[o.FileName]
		if qty < 1 {
			qty = 1
		}
		items = append(items, models.BatchItem{Record: *o.Record, Quantity: qty})
	}
	return items
}
