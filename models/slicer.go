// ABOUTME: Slicer volume model converting raw mesh volume to effective printed volume
// ABOUTME: Walls are treated as fully solid; infill applies only to the interior

package models

// SlicerParameters holds the wall and infill settings applied to a print.
// Both values are percentages in [0,100]; range enforcement is a caller
// concern (see services.ValidatePercent).
type SlicerParameters struct {
	InfillPercent float64 `json:"infill_percent"`
	WallPercent   float64 `json:"wall_percent"`
}

// EffectiveVolume converts a raw mesh volume into the volume of material
// actually deposited, given wall and infill percentages.
//
// The solid is partitioned into a wall fraction (always fully dense) and
// an interior fraction filled to the infill density:
//
//	effective = raw*wallFrac + raw*(1-wallFrac)*infillFrac
//
// wallPercent=100 yields the raw volume regardless of infill; wall and
// infill both zero yield 0, which callers must treat as a degenerate-input
// signal rather than fabricate a floor. The wall/infill interaction is a
// documented approximation of real slicer behavior: infill applies only to
// the complement of the wall fraction, and wall+infill is not constrained
// to 100 since the two apply to disjoint conceptual volumes.
func EffectiveVolume(rawVolumeCm3, infillPercent, wallPercent float64) float64 {
	wallFraction := wallPercent / 100
	infillFraction := infillPercent / 100

	wallVolume := rawVolumeCm3 * wallFraction
	internalVolume := rawVolumeCm3 * (1 - wallFraction)

	return wallVolume + internalVolume*infillFraction
}
