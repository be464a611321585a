// ABOUTME: Per-file analysis records and batch aggregation
// ABOUTME: Batch totals are always recomputed from scratch, never patched

package models

// MeshVolumeSample is the immutable result of geometry inspection.
// Watertight=false is a warning, not an error; volumes from leaky meshes
// are still reported so callers can decide whether to trust them.
type MeshVolumeSample struct {
	RawVolumeCm3 float64 `json:"raw_volume_cm3"`
	VertexCount  int     `json:"vertex_count"`
	FaceCount    int     `json:"face_count"`
	Watertight   bool    `json:"watertight"`
}

// AnalysisRecord is the immutable per-file analysis result.
type AnalysisRecord struct {
	FileName           string  `json:"file_name"`
	RawVolumeCm3       float64 `json:"raw_volume_cm3"`
	EffectiveVolumeCm3 float64 `json:"effective_volume_cm3"`
	WeightGrams        float64 `json:"weight_grams"`
	Cost               float64 `json:"cost"`
	PrintTimeHours     float64 `json:"print_time_hours"`
	VertexCount        int     `json:"vertex_count"`
	FaceCount          int     `json:"face_count"`
	Watertight         bool    `json:"watertight"`
}

// AnalysisOutcome pairs a file with either its record or a typed error.
// A batch of N files always yields N outcomes.
type AnalysisOutcome struct {
	FileName  string          `json:"file_name"`
	Record    *AnalysisRecord `json:"record,omitempty"`
	Error     string          `json:"error,omitempty"`
	ErrorKind ErrorKind       `json:"error_kind,omitempty"`
}

// Failed reports whether this outcome carries an error instead of a record.
func (o AnalysisOutcome) Failed() bool {
	return o.Record == nil
}

// BatchItem pairs an analysis record with its operator-set quantity.
type BatchItem struct {
	Record   AnalysisRecord `json:"record"`
	Quantity int            `json:"quantity"`
}

// BatchTotals is the aggregate over a sequence of batch items.
type BatchTotals struct {
	TotalCost           float64 `json:"total_cost"`
	TotalWeightGrams    float64 `json:"total_weight_grams"`
	TotalPrintTimeHours float64 `json:"total_print_time_hours"`
	ItemCount           int     `json:"item_count"`
	PieceCount          int     `json:"piece_count"`
}

// AggregateBatch computes batch totals from scratch. Quantities below 1
// default to 1. Any change to a quantity or to the record set requires a
// full recomputation through this function; totals are never adjusted
// incrementally, so they can never drift from their inputs.
func AggregateBatch(items []BatchItem) BatchTotals {
	totals := BatchTotals{ItemCount: len(items)}
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		q := float64(qty)
		totals.TotalCost += item.Record.Cost * q
		totals.TotalWeightGrams += item.Record.WeightGrams * q
		totals.TotalPrintTimeHours += item.Record.PrintTimeHours * q
		totals.PieceCount += qty
	}
	return totals
}
