package posture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// pose is a test fixture describing one person in metres, y-up, facing +z
type pose map[Landmark]r3.Vec

// neutralPose returns an upright seated pose: level shoulders and hips,
// vertical neck and spine, elbows at 90 degrees and straight wrists
func neutralPose() pose {
	p := pose{
		LeftEar:       {X: 0.07, Y: 1.6},
		RightEar:      {X: -0.07, Y: 1.6},
		LeftShoulder:  {X: 0.2, Y: 1.4},
		RightShoulder: {X: -0.2, Y: 1.4},
		LeftHip:       {X: 0.15, Y: 0.9},
		RightHip:      {X: -0.15, Y: 0.9},
		LeftKnee:      {X: 0.15, Y: 0.5},
		RightKnee:     {X: -0.15, Y: 0.5},
		LeftAnkle:     {X: 0.15, Y: 0.1},
		RightAnkle:    {X: -0.15, Y: 0.1},
		Nose:          {Y: 1.6, Z: 0.1},
	}
	p.attachArms()
	return p
}

// attachArms hangs the upper arms straight down from the shoulders with the
// forearms pointing forward and the hands in line with the forearms
func (p pose) attachArms() {
	for _, s := range []side{leftSide, rightSide} {
		elbow := r3.Add(p[s.shoulder], r3.Vec{Y: -0.3})
		wrist := r3.Add(elbow, r3.Vec{Z: 0.25})
		p[s.elbow] = elbow
		p[s.wrist] = wrist
		p[s.knuckle] = r3.Add(wrist, r3.Vec{Z: 0.08})
	}
}

// sagittal returns a vector of the given length tilted forward from
// vertical by deg degrees
func sagittal(length, deg float64) r3.Vec {
	rad := deg * math.Pi / 180
	return r3.Vec{Y: length * math.Cos(rad), Z: length * math.Sin(rad)}
}

// setNeck places the ears so the neck-to-head segment leans forward by deg
// degrees from vertical
func (p pose) setNeck(deg float64) {
	neck := midpoint(p[LeftShoulder], p[RightShoulder])
	head := r3.Add(neck, sagittal(0.2, deg))
	p[LeftEar] = r3.Add(head, r3.Vec{X: 0.07})
	p[RightEar] = r3.Add(head, r3.Vec{X: -0.07})
}

// setBack leans the trunk forward by deg degrees about the hip midpoint,
// carrying the arms with the shoulders and keeping the neck vertical
func (p pose) setBack(deg float64) {
	hip := midpoint(p[LeftHip], p[RightHip])
	mid := r3.Add(hip, sagittal(0.5, deg))
	p[LeftShoulder] = r3.Add(mid, r3.Vec{X: 0.2})
	p[RightShoulder] = r3.Add(mid, r3.Vec{X: -0.2})
	p.attachArms()
	p.setNeck(0)
}

// bendWrists tilts both hands up from the forearm line by deg degrees
func (p pose) bendWrists(deg float64) {
	for _, s := range []side{leftSide, rightSide} {
		rad := deg * math.Pi / 180
		p[s.knuckle] = r3.Add(p[s.wrist], r3.Vec{Y: 0.08 * math.Sin(rad), Z: 0.08 * math.Cos(rad)})
	}
}

// keypoints converts the fixture into a KeypointSet
func (p pose) keypoints(t testing.TB) *KeypointSet {
	t.Helper()
	ks, err := NewKeypointSet(p)
	require.NoError(t, err)
	return ks
}

// newTestAnalyzer returns an Analyzer with default params
func newTestAnalyzer(t testing.TB) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultParams())
	require.NoError(t, err)
	return a
}
