package nav

import (
	"math"
	"testing"
)

func TestNormalizeBearing(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{720, 0},
		{-90, 270},
		{-450, 270},
		{123.5, 123.5},
		{400, 40},
	}
	for _, tt := range tests {
		if got := NormalizeBearing(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeBearing(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{540, 180},
		{45, 45},
		{-45, -45},
	}
	for _, tt := range tests {
		got := SignedDelta(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SignedDelta(%g) = %g, want %g", tt.in, got, tt.want)
		}
		if got <= -180 || got > 180 {
			t.Errorf("SignedDelta(%g) = %g outside (-180,180]", tt.in, got)
		}
	}
}

func TestWorldBearingAxes(t *testing.T) {
	// Map space: Y grows downward, so "up" on screen is 90°.
	tests := []struct {
		name           string
		x2, y2, want   float64
	}{
		{"East", 10, 0, 0},
		{"North", 0, -10, 90},
		{"West", -10, 0, 180},
		{"South", 0, 10, 270},
		{"NorthEast", 10, -10, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := worldBearingXY(0, 0, tt.x2, tt.y2); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("bearing to (%g,%g) = %g, want %g", tt.x2, tt.y2, got, tt.want)
			}
		})
	}
}
