// ABOUTME: Print time estimation from effective volume and extrusion parameters
// ABOUTME: Guards zero-valued rates with a typed error instead of producing Inf/NaN

package models

// PrintTimeHours estimates elapsed print time for an effective volume.
//
// The extrusion rate speed*layerHeight*nozzleDiameter is an mm³/s proxy
// for deposition rate; effective volume is converted to mm³ and divided
// through. Returns a computation error when any rate parameter is zero or
// negative, since that indicates a configuration problem rather than a
// bad file.
func PrintTimeHours(effectiveVolumeCm3, layerHeightMm, speedMmPerSec, nozzleDiameterMm float64) (float64, error) {
	if speedMmPerSec <= 0 {
		return 0, NewComputationError("estimate.time", "printer speed must be positive")
	}
	if layerHeightMm <= 0 {
		return 0, NewComputationError("estimate.time", "layer height must be positive")
	}
	if nozzleDiameterMm <= 0 {
		return 0, NewComputationError("estimate.time", "nozzle diameter must be positive")
	}

	extrusionRate := speedMmPerSec * layerHeightMm * nozzleDiameterMm // mm3/s
	totalVolumeMm3 := effectiveVolumeCm3 * 1000

	return totalVolumeMm3 / extrusionRate / 3600, nil
}
