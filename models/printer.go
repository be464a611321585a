// ABOUTME: Printer profile catalog with speed, nozzle, and build volume specs
// ABOUTME: Profiles are static and looked up by name

package models

import "fmt"

// PrinterProfile describes a printer configuration used for time estimation.
// Reliability is informational only and takes no part in any calculation.
type PrinterProfile struct {
	Name             string     `json:"name"`
	MaxSpeedMmPerSec float64    `json:"max_speed_mm_per_sec"`
	NozzleDiameterMm float64    `json:"nozzle_diameter_mm"`
	MaxBuildVolumeMm [3]float64 `json:"max_build_volume_mm"`
	Reliability      float64    `json:"reliability"` // 0-1
}

// DefaultPrinterName is used when no profile is requested.
const DefaultPrinterName = "ender3"

// printerCatalog is the static profile catalog, keyed by name.
var printerCatalog = map[string]PrinterProfile{
	"ender3": {
		Name:             "ender3",
		MaxSpeedMmPerSec: 60,
		NozzleDiameterMm: 0.4,
		MaxBuildVolumeMm: [3]float64{220, 220, 250},
		Reliability:      0.85,
	},
	"prusa-mk4": {
		Name:             "prusa-mk4",
		MaxSpeedMmPerSec: 200,
		NozzleDiameterMm: 0.4,
		MaxBuildVolumeMm: [3]float64{250, 210, 220},
		Reliability:      0.95,
	},
	"bambu-x1c": {
		Name:             "bambu-x1c",
		MaxSpeedMmPerSec: 500,
		NozzleDiameterMm: 0.4,
		MaxBuildVolumeMm: [3]float64{256, 256, 256},
		Reliability:      0.93,
	},
	"voron-2.4": {
		Name:             "voron-2.4",
		MaxSpeedMmPerSec: 300,
		NozzleDiameterMm: 0.4,
		MaxBuildVolumeMm: [3]float64{350, 350, 340},
		Reliability:      0.9,
	},
}

// LookupPrinter returns the profile for name, or an input error if unknown.
func LookupPrinter(name string) (PrinterProfile, error) {
	if name == "" {
		name = DefaultPrinterName
	}
	p, ok := printerCatalog[name]
	if !ok {
		return PrinterProfile{}, NewInputError("printer.lookup", fmt.Sprintf("unknown printer profile %q", name), nil)
	}
	return p, nil
}

// PrinterProfiles returns all catalog profiles in stable name order.
func PrinterProfiles() []PrinterProfile {
	names := []string{"bambu-x1c", "ender3", "prusa-mk4", "voron-2.4"}
	profiles := make([]PrinterProfile, 0, len(names))
	for _, n := range names {
		profiles = append(profiles, printerCatalog[n])
	}
	return profiles
}
