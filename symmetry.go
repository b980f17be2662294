package posture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Symmetry holds left/right symmetry scores in [0, 100] where 100 is
// perfectly symmetric
type Symmetry struct {
	ShoulderScore float64 `json:"shoulder_symmetry"`
	HipScore      float64 `json:"hip_symmetry"`
	OverallScore  float64 `json:"symmetry_score"`
	Unit          Unit    `json:"unit"`
}

// Symmetry scores the height difference of the shoulder and hip pairs.  The
// difference is normalised by shoulder breadth so the score does not depend
// on body size.
func (a *Analyzer) Symmetry(ks *KeypointSet) (Symmetry, error) {

	pts, err := ks.lookup(metricSymmetry, LeftShoulder, RightShoulder, LeftHip, RightHip)

	if err != nil {
		return Symmetry{}, err
	}

	breadth := distance(pts[0], pts[1])

	if breadth < minLength {
		return Symmetry{}, &DegenerateGeometryError{
			Metric: metricSymmetry,
			Reason: "shoulders are coincident",
		}
	}

	shoulder := a.pairScore(pts[0], pts[1], breadth)
	hip := a.pairScore(pts[2], pts[3], breadth)

	return Symmetry{
		ShoulderScore: shoulder,
		HipScore:      hip,
		OverallScore:  (shoulder + hip) / 2,
		Unit:          UnitScore,
	}, nil
}

// pairScore returns 100 * (1 - |height difference| / scale) clamped to
// [0, 100]
func (a *Analyzer) pairScore(left, right r3.Vec, scale float64) float64 {
	diff := math.Abs(r3.Dot(left, a.up) - r3.Dot(right, a.up))
	return clamp(100*(1-diff/scale), 0, 100)
}
