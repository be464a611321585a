package models

import (
	"math"
	"testing"
)

func TestPrintTimeHours_KnownValue(t *testing.T) {
	// 10 cm3 = 10000 mm3; rate = 60*0.2*0.4 = 4.8 mm3/s
	got, err := PrintTimeHours(10, 0.2, 60, 0.4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := 10000.0 / 4.8 / 3600
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %v hours, got %v", want, got)
	}
}

func TestPrintTimeHours_PositiveForPositiveInputs(t *testing.T) {
	got, err := PrintTimeHours(0.001, 0.1, 30, 0.4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got <= 0 || math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("Expected strictly positive finite hours, got %v", got)
	}
}

func TestPrintTimeHours_ZeroRatesAreComputationErrors(t *testing.T) {
	tests := []struct {
		name                string
		layer, speed, nozzle float64
	}{
		{"zero speed", 0.2, 0, 0.4},
		{"zero layer height", 0, 60, 0.4},
		{"zero nozzle", 0.2, 60, 0},
		{"negative speed", 0.2, -10, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrintTimeHours(10, tt.layer, tt.speed, tt.nozzle)
			if err == nil {
				t.Fatalf("Expected error, got hours=%v", got)
			}
			if KindOf(err) != ErrComputation {
				t.Errorf("Expected computation error kind, got %q", KindOf(err))
			}
			if math.IsInf(got, 0) || math.IsNaN(got) {
				t.Errorf("Expected zero value on error, got %v", got)
			}
		})
	}
}
