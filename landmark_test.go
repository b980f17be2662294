package posture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLandmarkVocabulary(t *testing.T) {
	assert.Equal(t, 70, LandmarkCount)
	assert.Equal(t, "nose", Nose.String())
	assert.Equal(t, "right_wrist", RightWrist.String())
	assert.Equal(t, 41, int(RightWrist))
	assert.Equal(t, "left_wrist", LeftWrist.String())
	assert.Equal(t, 62, int(LeftWrist))
	assert.Equal(t, "neck", Neck.String())
	assert.Equal(t, "landmark(70)", Landmark(70).String())

	seen := make(map[string]bool)

	for i := 0; i < LandmarkCount; i++ {
		l := Landmark(i)
		name := l.String()

		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true

		got, err := ParseLandmark(name)
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
}

func TestParseLandmarkUnknown(t *testing.T) {
	_, err := ParseLandmark("left_antenna")
	assert.ErrorIs(t, err, ErrUnknownLandmark)
	assert.Contains(t, err.Error(), "left_antenna")
}

func TestRequiredLandmarksInVocabulary(t *testing.T) {
	req := RequiredLandmarks()
	require.NotEmpty(t, req)

	seen := make(map[Landmark]bool)

	for _, l := range req {
		assert.True(t, l.Valid(), "landmark %d outside vocabulary", l)
		assert.False(t, seen[l], "duplicate landmark %s", l)
		seen[l] = true
	}

	for _, l := range []Landmark{LeftEar, RightEar, LeftShoulder, RightShoulder,
		LeftElbow, RightElbow, LeftWrist, RightWrist, LeftMiddleFingerThirdJoint,
		RightMiddleFingerThirdJoint, LeftHip, RightHip, LeftKnee, RightKnee,
		LeftAnkle, RightAnkle} {
		assert.True(t, seen[l], "landmark %s not required", l)
	}
}

func TestParseKeypoints(t *testing.T) {
	ks, err := ParseKeypoints(map[string][3]float64{
		"left_shoulder":  {0.2, 1.4, 0},
		"right_shoulder": {-0.2, 1.4, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ks.Len())

	p, ok := ks.Get(LeftShoulder)
	assert.True(t, ok)
	assert.Equal(t, r3.Vec{X: 0.2, Y: 1.4}, p)

	_, ok = ks.Get(LeftHip)
	assert.False(t, ok)

	_, err = ParseKeypoints(map[string][3]float64{"tail": {}})
	assert.ErrorIs(t, err, ErrUnknownLandmark)
}

func TestKeypointSetImmutable(t *testing.T) {
	src := map[Landmark]r3.Vec{LeftHip: {X: 1}}

	ks, err := NewKeypointSet(src)
	require.NoError(t, err)

	src[LeftHip] = r3.Vec{X: 2}
	src[RightHip] = r3.Vec{X: 3}

	p, _ := ks.Get(LeftHip)
	assert.Equal(t, 1.0, p.X)
	assert.Equal(t, 1, ks.Len())

	without := ks.Without(LeftHip)
	assert.Equal(t, 0, without.Len())
	assert.Equal(t, 1, ks.Len())

	_, err = NewKeypointSet(map[Landmark]r3.Vec{Landmark(-1): {}})
	assert.ErrorIs(t, err, ErrUnknownLandmark)
}

func TestKeypointsOrdered(t *testing.T) {
	kps := neutralPose().keypoints(t).Keypoints()

	for i := 1; i < len(kps); i++ {
		assert.Less(t, kps[i-1].Landmark, kps[i].Landmark)
	}
}

// jointsTensor lays the pose out as a flattened (70,3) tensor, leaving
// landmarks absent from the pose at the origin
func jointsTensor(p pose) []float32 {
	out := make([]float32, LandmarkCount*3)
	for l, v := range p {
		out[int(l)*3+0] = float32(v.X)
		out[int(l)*3+1] = float32(v.Y)
		out[int(l)*3+2] = float32(v.Z)
	}
	return out
}

func TestKeypointsFromFloat32(t *testing.T) {
	ks, err := KeypointsFromFloat32(jointsTensor(neutralPose()))
	require.NoError(t, err)
	assert.Equal(t, LandmarkCount, ks.Len())

	r, err := newTestAnalyzer(t).Analyze(ks)
	require.NoError(t, err)
	assert.InDelta(t, 90, r.ElbowAngles.Left.AngleDegrees, 1e-3)
	assert.Equal(t, RiskLow, r.Risk.Level)

	_, err = KeypointsFromFloat32(make([]float32, 17*3))
	assert.Error(t, err)
}

func TestKeypointsFromFloat16(t *testing.T) {
	f32 := jointsTensor(neutralPose())
	f16 := make([]uint16, len(f32))

	for i, v := range f32 {
		f16[i] = float16.Fromfloat32(v).Bits()
	}

	ks, err := KeypointsFromFloat16(f16)
	require.NoError(t, err)

	for l, want := range neutralPose() {
		got, ok := ks.Get(l)
		require.True(t, ok)
		assert.InDelta(t, want.X, got.X, 1e-3, "landmark %s", l)
		assert.InDelta(t, want.Y, got.Y, 1e-3, "landmark %s", l)
		assert.InDelta(t, want.Z, got.Z, 1e-3, "landmark %s", l)
	}

	_, err = KeypointsFromFloat16(make([]uint16, 3))
	assert.Error(t, err)
}
