package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 19.0760, 72.8777, 19.0760, 72.8777, 0, 1e-9},
		{"mumbai to pune", 19.0760, 72.8777, 18.5204, 73.8567, 120.0, 5},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 343.5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineKm() = %.3f, want %.3f±%.1f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineKm(13.7563, 100.5018, 1.3521, 103.8198)
	b := HaversineKm(1.3521, 103.8198, 13.7563, 100.5018)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("Expected symmetric distance, got %f and %f", a, b)
	}
	if m := HaversineMeters(13.7563, 100.5018, 1.3521, 103.8198); math.Abs(m-a*1000) > 1e-6 {
		t.Errorf("HaversineMeters mismatch: %f vs %f", m, a*1000)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{North: 19.27, South: 18.89, East: 72.98, West: 72.77}

	if !b.Contains(19.0, 72.8) {
		t.Error("Expected point inside bounds")
	}
	if !b.Contains(19.27, 72.77) {
		t.Error("Edges should be inclusive")
	}
	if b.Contains(19.3, 72.8) {
		t.Error("Expected point north of bounds to be outside")
	}
}
