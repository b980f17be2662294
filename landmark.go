package posture

import (
	"errors"
	"fmt"
)

// ErrUnknownLandmark is returned when a landmark name is not part of the
// MHR70 vocabulary
var ErrUnknownLandmark = errors.New("unknown landmark")

// Landmark identifies an anatomical keypoint.  Values follow the joint index
// order of the MHR70 skeleton output by the SAM 3D Body model so a raw
// (70,3) joints tensor can be indexed directly by Landmark.
type Landmark int

/* MHR70 keypoints
0-4:   Nose, Left Eye, Right Eye, Left Ear, Right Ear
5-8:   Left Shoulder, Right Shoulder, Left Elbow, Right Elbow
9-14:  Left Hip, Right Hip, Left Knee, Right Knee, Left Ankle, Right Ankle
15-20: Left Big Toe, Left Small Toe, Left Heel, Right Big Toe, Right Small Toe, Right Heel
21-40: Right hand fingers, tip (4) to knuckle (third joint)
41:    Right Wrist
42-61: Left hand fingers, tip (4) to knuckle (third joint)
62:    Left Wrist
63-68: Left/Right Olecranon, Left/Right Cubital Fossa, Left/Right Acromion
69:    Neck
*/
const (
	Nose Landmark = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftBigToe
	LeftSmallToe
	LeftHeel
	RightBigToe
	RightSmallToe
	RightHeel
	RightThumb4
	RightThumb3
	RightThumb2
	RightThumbThirdJoint
	RightForefinger4
	RightForefinger3
	RightForefinger2
	RightForefingerThirdJoint
	RightMiddleFinger4
	RightMiddleFinger3
	RightMiddleFinger2
	RightMiddleFingerThirdJoint
	RightRingFinger4
	RightRingFinger3
	RightRingFinger2
	RightRingFingerThirdJoint
	RightPinkyFinger4
	RightPinkyFinger3
	RightPinkyFinger2
	RightPinkyFingerThirdJoint
	RightWrist
	LeftThumb4
	LeftThumb3
	LeftThumb2
	LeftThumbThirdJoint
	LeftForefinger4
	LeftForefinger3
	LeftForefinger2
	LeftForefingerThirdJoint
	LeftMiddleFinger4
	LeftMiddleFinger3
	LeftMiddleFinger2
	LeftMiddleFingerThirdJoint
	LeftRingFinger4
	LeftRingFinger3
	LeftRingFinger2
	LeftRingFingerThirdJoint
	LeftPinkyFinger4
	LeftPinkyFinger3
	LeftPinkyFinger2
	LeftPinkyFingerThirdJoint
	LeftWrist
	LeftOlecranon
	RightOlecranon
	LeftCubitalFossa
	RightCubitalFossa
	LeftAcromion
	RightAcromion
	Neck

	// LandmarkCount is the number of keypoints in the MHR70 vocabulary
	LandmarkCount = int(Neck) + 1
)

var landmarkNames = [LandmarkCount]string{
	"nose", "left_eye", "right_eye", "left_ear", "right_ear",
	"left_shoulder", "right_shoulder", "left_elbow", "right_elbow",
	"left_hip", "right_hip", "left_knee", "right_knee", "left_ankle", "right_ankle",
	"left_big_toe", "left_small_toe", "left_heel",
	"right_big_toe", "right_small_toe", "right_heel",
	"right_thumb4", "right_thumb3", "right_thumb2", "right_thumb_third_joint",
	"right_forefinger4", "right_forefinger3", "right_forefinger2", "right_forefinger_third_joint",
	"right_middle_finger4", "right_middle_finger3", "right_middle_finger2", "right_middle_finger_third_joint",
	"right_ring_finger4", "right_ring_finger3", "right_ring_finger2", "right_ring_finger_third_joint",
	"right_pinky_finger4", "right_pinky_finger3", "right_pinky_finger2", "right_pinky_finger_third_joint",
	"right_wrist",
	"left_thumb4", "left_thumb3", "left_thumb2", "left_thumb_third_joint",
	"left_forefinger4", "left_forefinger3", "left_forefinger2", "left_forefinger_third_joint",
	"left_middle_finger4", "left_middle_finger3", "left_middle_finger2", "left_middle_finger_third_joint",
	"left_ring_finger4", "left_ring_finger3", "left_ring_finger2", "left_ring_finger_third_joint",
	"left_pinky_finger4", "left_pinky_finger3", "left_pinky_finger2", "left_pinky_finger_third_joint",
	"left_wrist",
	"left_olecranon", "right_olecranon", "left_cubital_fossa", "right_cubital_fossa",
	"left_acromion", "right_acromion",
	"neck",
}

// landmarkByName is the reverse lookup of landmarkNames
var landmarkByName = func() map[string]Landmark {
	m := make(map[string]Landmark, LandmarkCount)
	for i, name := range landmarkNames {
		m[name] = Landmark(i)
	}
	return m
}()

// String returns the snake_case name used by the pose model
func (l Landmark) String() string {
	if !l.Valid() {
		return fmt.Sprintf("landmark(%d)", int(l))
	}
	return landmarkNames[l]
}

// Valid reports whether the landmark is part of the vocabulary
func (l Landmark) Valid() bool {
	return l >= 0 && int(l) < LandmarkCount
}

// ParseLandmark returns the Landmark for the given snake_case name
func ParseLandmark(name string) (Landmark, error) {
	l, ok := landmarkByName[name]

	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLandmark, name)
	}

	return l, nil
}

// side groups the landmarks of one half of the body
type side struct {
	shoulder, elbow, wrist, knuckle, hip, knee, ankle Landmark
}

var (
	leftSide = side{
		shoulder: LeftShoulder,
		elbow:    LeftElbow,
		wrist:    LeftWrist,
		knuckle:  LeftMiddleFingerThirdJoint,
		hip:      LeftHip,
		knee:     LeftKnee,
		ankle:    LeftAnkle,
	}
	rightSide = side{
		shoulder: RightShoulder,
		elbow:    RightElbow,
		wrist:    RightWrist,
		knuckle:  RightMiddleFingerThirdJoint,
		hip:      RightHip,
		knee:     RightKnee,
		ankle:    RightAnkle,
	}
)
