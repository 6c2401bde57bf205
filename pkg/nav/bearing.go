package nav

import "math"

// NormalizeBearing wraps an angle in degrees into [0,360).
func NormalizeBearing(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// SignedDelta wraps an angular difference in degrees into (-180,180].
func SignedDelta(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// isFiniteAngle reports whether deg is a usable angle (not NaN or ±Inf).
func isFiniteAngle(deg float64) bool {
	return !math.IsNaN(deg) && !math.IsInf(deg, 0)
}

// worldBearingXY computes the compass bearing from (x1,y1) to (x2,y2) in map
// space, where Y grows downward: atan2(-Δy, Δx) in degrees, [0,360), 0°=east.
func worldBearingXY(x1, y1, x2, y2 float64) float64 {
	return NormalizeBearing(math.Atan2(-(y2 - y1), x2-x1) * 180 / math.Pi)
}
