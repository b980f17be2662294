package posture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// minLength is the vector length below which two landmarks are treated as
// coincident
const minLength = 1e-9

// midpoint returns the point halfway between a and b
func midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

// angleBetween returns the unsigned angle in degrees between vectors a and b,
// in the range [0, 180]
func angleBetween(metric string, a, b r3.Vec) (float64, error) {

	na := r3.Norm(a)
	nb := r3.Norm(b)

	if na < minLength || nb < minLength {
		return 0, &DegenerateGeometryError{
			Metric: metric,
			Reason: "zero length vector",
		}
	}

	cos := r3.Dot(a, b) / (na * nb)

	// clip rounding error before acos
	cos = math.Max(-1, math.Min(1, cos))

	deg := math.Acos(cos) * 180 / math.Pi

	if math.IsNaN(deg) {
		return 0, &DegenerateGeometryError{
			Metric: metric,
			Reason: "angle is not a number",
		}
	}

	return deg, nil
}

// jointAngle returns the interior angle in degrees at joint b formed by the
// points a-b-c
func jointAngle(metric string, a, b, c r3.Vec) (float64, error) {
	return angleBetween(metric, r3.Sub(a, b), r3.Sub(c, b))
}

// distance returns the euclidean distance between a and b
func distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// clamp restricts v to the range [lo, hi]
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
