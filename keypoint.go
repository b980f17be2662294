package posture

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Keypoint is a named anatomical landmark with its 3D position
type Keypoint struct {
	Landmark Landmark
	Pos      r3.Vec
}

// KeypointSet holds the keypoints of exactly one detected person.  It is
// immutable after construction and safe for concurrent reads.
type KeypointSet struct {
	points map[Landmark]r3.Vec
}

// NewKeypointSet returns a KeypointSet holding a copy of the given points
func NewKeypointSet(points map[Landmark]r3.Vec) (*KeypointSet, error) {

	ks := &KeypointSet{
		points: make(map[Landmark]r3.Vec, len(points)),
	}

	for l, p := range points {
		if !l.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLandmark, l)
		}
		ks.points[l] = p
	}

	return ks, nil
}

// ParseKeypoints builds a KeypointSet from landmark names mapped to x, y, z
// coordinates, the form keypoint files and the pose model's JSON use
func ParseKeypoints(points map[string][3]float64) (*KeypointSet, error) {

	ks := &KeypointSet{
		points: make(map[Landmark]r3.Vec, len(points)),
	}

	for name, xyz := range points {
		l, err := ParseLandmark(name)

		if err != nil {
			return nil, err
		}

		ks.points[l] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}

	return ks, nil
}

// Get returns the position of the landmark and whether it is present
func (ks *KeypointSet) Get(l Landmark) (r3.Vec, bool) {
	p, ok := ks.points[l]
	return p, ok
}

// Len returns the number of landmarks in the set
func (ks *KeypointSet) Len() int {
	return len(ks.points)
}

// Keypoints returns all keypoints ordered by landmark
func (ks *KeypointSet) Keypoints() []Keypoint {

	out := make([]Keypoint, 0, len(ks.points))

	for l, p := range ks.points {
		out = append(out, Keypoint{Landmark: l, Pos: p})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Landmark < out[j].Landmark
	})

	return out
}

// Without returns a copy of the set with the given landmarks removed
func (ks *KeypointSet) Without(drop ...Landmark) *KeypointSet {

	out := &KeypointSet{
		points: make(map[Landmark]r3.Vec, len(ks.points)),
	}

	for l, p := range ks.points {
		out.points[l] = p
	}

	for _, l := range drop {
		delete(out.points, l)
	}

	return out
}

// missing returns the landmarks from the list that are absent from the set,
// in the order given
func (ks *KeypointSet) missing(landmarks ...Landmark) []Landmark {

	var out []Landmark

	for _, l := range landmarks {
		if _, ok := ks.points[l]; !ok {
			out = append(out, l)
		}
	}

	return out
}

// lookup fetches the landmarks needed by a metric, failing if any is absent,
// non-finite or sits at the origin (the pose model's marker for an
// undetected joint)
func (ks *KeypointSet) lookup(metric string, landmarks ...Landmark) ([]r3.Vec, error) {

	if miss := ks.missing(landmarks...); len(miss) > 0 {
		return nil, &MissingLandmarkError{Metric: metric, Landmarks: miss}
	}

	out := make([]r3.Vec, len(landmarks))

	for i, l := range landmarks {
		p := ks.points[l]

		if !finite(p) {
			return nil, &DegenerateGeometryError{
				Metric: metric,
				Reason: fmt.Sprintf("landmark %s has non-finite coordinates", l),
			}
		}

		if p == (r3.Vec{}) {
			return nil, &DegenerateGeometryError{
				Metric: metric,
				Reason: fmt.Sprintf("landmark %s is at the origin", l),
			}
		}

		out[i] = p
	}

	return out, nil
}

// finite reports whether all coordinates are finite numbers
func finite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
