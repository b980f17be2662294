package posture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Unit is the unit of measure of a metric value
type Unit string

const (
	UnitDegrees     Unit = "degrees"
	UnitPercent     Unit = "percent"
	UnitCentimeters Unit = "cm"
	UnitScore       Unit = "score"
)

// metric names used in errors and logging
const (
	metricNeck         = "neck_flexion"
	metricShoulder     = "shoulder_elevation"
	metricElbow        = "elbow_angles"
	metricWrist        = "wrist_extension"
	metricBack         = "back_posture"
	metricMeasurements = "measurements"
	metricSymmetry     = "body_symmetry"
)

// required lists the landmarks each metric reads, in the order metrics are
// computed
var required = []struct {
	metric    string
	landmarks []Landmark
}{
	{metricNeck, []Landmark{LeftEar, RightEar, LeftShoulder, RightShoulder}},
	{metricShoulder, []Landmark{LeftShoulder, RightShoulder}},
	{metricElbow, []Landmark{LeftShoulder, LeftElbow, LeftWrist,
		RightShoulder, RightElbow, RightWrist}},
	{metricWrist, []Landmark{LeftElbow, LeftWrist, LeftMiddleFingerThirdJoint,
		RightElbow, RightWrist, RightMiddleFingerThirdJoint}},
	{metricBack, []Landmark{LeftShoulder, RightShoulder, LeftHip, RightHip}},
	{metricMeasurements, []Landmark{LeftShoulder, RightShoulder, LeftElbow,
		RightElbow, LeftWrist, RightWrist, LeftHip, RightHip, LeftKnee,
		RightKnee, LeftAnkle, RightAnkle}},
	{metricSymmetry, []Landmark{LeftShoulder, RightShoulder, LeftHip, RightHip}},
}

// RequiredLandmarks returns every landmark the Analyzer reads, without
// duplicates, in first use order
func RequiredLandmarks() []Landmark {

	seen := make(map[Landmark]bool)
	var out []Landmark

	for _, r := range required {
		for _, l := range r.landmarks {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}

	return out
}

// NeckFlexion is the forward head posture metric
type NeckFlexion struct {
	// AngleDegrees is the angle between the neck-to-head segment and vertical
	AngleDegrees float64   `json:"angle_degrees"`
	Unit         Unit      `json:"unit"`
	Risk         RiskLevel `json:"risk_level"`
	Optimal      bool      `json:"optimal"`
}

// NeckFlexion measures the deviation of the head from vertical.  The head is
// located at the ear midpoint and the neck at the shoulder midpoint.
func (a *Analyzer) NeckFlexion(ks *KeypointSet) (NeckFlexion, error) {

	pts, err := ks.lookup(metricNeck, LeftEar, RightEar, LeftShoulder, RightShoulder)

	if err != nil {
		return NeckFlexion{}, err
	}

	head := midpoint(pts[0], pts[1])
	neck := midpoint(pts[2], pts[3])

	angle, err := angleBetween(metricNeck, r3.Sub(head, neck), a.up)

	if err != nil {
		return NeckFlexion{}, err
	}

	return NeckFlexion{
		AngleDegrees: angle,
		Unit:         UnitDegrees,
		Risk:         a.params.NeckFlexion.Classify(angle),
		Optimal:      angle < a.params.NeckFlexion.Low,
	}, nil
}

// ShoulderElevation is the shoulder height asymmetry metric
type ShoulderElevation struct {
	// AsymmetryPercent is the height difference between shoulders as a
	// percentage of shoulder breadth
	AsymmetryPercent float64   `json:"asymmetry_percent"`
	LeftHeight       float64   `json:"left_height"`
	RightHeight      float64   `json:"right_height"`
	Unit             Unit      `json:"unit"`
	Risk             RiskLevel `json:"risk_level"`
	Optimal          bool      `json:"optimal"`
}

// ShoulderElevation measures the vertical height difference between the
// shoulders relative to shoulder breadth
func (a *Analyzer) ShoulderElevation(ks *KeypointSet) (ShoulderElevation, error) {

	pts, err := ks.lookup(metricShoulder, LeftShoulder, RightShoulder)

	if err != nil {
		return ShoulderElevation{}, err
	}

	breadth := distance(pts[0], pts[1])

	if breadth < minLength {
		return ShoulderElevation{}, &DegenerateGeometryError{
			Metric: metricShoulder,
			Reason: "shoulders are coincident",
		}
	}

	left := r3.Dot(pts[0], a.up)
	right := r3.Dot(pts[1], a.up)
	pct := clamp(math.Abs(left-right)/breadth*100, 0, 100)

	return ShoulderElevation{
		AsymmetryPercent: pct,
		LeftHeight:       left,
		RightHeight:      right,
		Unit:             UnitPercent,
		Risk:             a.params.ShoulderElevation.Classify(pct),
		Optimal:          pct < a.params.ShoulderElevation.Low,
	}, nil
}

// ElbowSide is the elbow angle of one arm
type ElbowSide struct {
	AngleDegrees float64   `json:"angle_degrees"`
	Optimal      bool      `json:"optimal"`
	Risk         RiskLevel `json:"risk_level"`
}

// ElbowAngles holds the interior elbow angle of both arms
type ElbowAngles struct {
	Left  ElbowSide `json:"left"`
	Right ElbowSide `json:"right"`
	Unit  Unit      `json:"unit"`
}

// ElbowAngles measures the interior angle at each elbow between the upper
// arm and forearm
func (a *Analyzer) ElbowAngles(ks *KeypointSet) (ElbowAngles, error) {

	// check both sides up front so all missing landmarks are reported together
	if miss := ks.missing(LeftShoulder, LeftElbow, LeftWrist,
		RightShoulder, RightElbow, RightWrist); len(miss) > 0 {
		return ElbowAngles{}, &MissingLandmarkError{Metric: metricElbow, Landmarks: miss}
	}

	left, err := a.elbowSide(ks, leftSide)

	if err != nil {
		return ElbowAngles{}, err
	}

	right, err := a.elbowSide(ks, rightSide)

	if err != nil {
		return ElbowAngles{}, err
	}

	return ElbowAngles{
		Left:  left,
		Right: right,
		Unit:  UnitDegrees,
	}, nil
}

// elbowSide computes the elbow angle for one side of the body
func (a *Analyzer) elbowSide(ks *KeypointSet, s side) (ElbowSide, error) {

	pts, err := ks.lookup(metricElbow, s.shoulder, s.elbow, s.wrist)

	if err != nil {
		return ElbowSide{}, err
	}

	angle, err := jointAngle(metricElbow, pts[0], pts[1], pts[2])

	if err != nil {
		return ElbowSide{}, err
	}

	optimal := angle >= a.params.ElbowOptimalMin && angle <= a.params.ElbowOptimalMax
	risk := RiskLow

	if !optimal {
		risk = RiskMedium
	}

	return ElbowSide{
		AngleDegrees: angle,
		Optimal:      optimal,
		Risk:         risk,
	}, nil
}

// WristExtension is the wrist deviation metric
type WristExtension struct {
	LeftDeviation    float64   `json:"left_deviation"`
	RightDeviation   float64   `json:"right_deviation"`
	AverageDeviation float64   `json:"average_deviation"`
	Unit             Unit      `json:"unit"`
	Risk             RiskLevel `json:"risk_level"`
	Optimal          bool      `json:"optimal"`
}

// WristExtension measures how far each hand bends away from the line of the
// forearm.  The hand direction runs from the wrist to the middle finger
// knuckle; a straight wrist measures 0 degrees.
func (a *Analyzer) WristExtension(ks *KeypointSet) (WristExtension, error) {

	pts, err := ks.lookup(metricWrist,
		LeftElbow, LeftWrist, LeftMiddleFingerThirdJoint,
		RightElbow, RightWrist, RightMiddleFingerThirdJoint)

	if err != nil {
		return WristExtension{}, err
	}

	left, err := angleBetween(metricWrist, r3.Sub(pts[1], pts[0]), r3.Sub(pts[2], pts[1]))

	if err != nil {
		return WristExtension{}, err
	}

	right, err := angleBetween(metricWrist, r3.Sub(pts[4], pts[3]), r3.Sub(pts[5], pts[4]))

	if err != nil {
		return WristExtension{}, err
	}

	avg := (left + right) / 2

	return WristExtension{
		LeftDeviation:    left,
		RightDeviation:   right,
		AverageDeviation: avg,
		Unit:             UnitDegrees,
		Risk:             a.params.WristExtension.Classify(avg),
		Optimal:          avg < a.params.WristExtension.Low,
	}, nil
}

// BackPosture is the trunk forward lean metric
type BackPosture struct {
	ForwardLeanDegrees float64   `json:"forward_lean_degrees"`
	Unit               Unit      `json:"unit"`
	Risk               RiskLevel `json:"risk_level"`
	Optimal            bool      `json:"optimal"`
}

// BackPosture measures the angle between the hip-to-shoulder midline and
// vertical
func (a *Analyzer) BackPosture(ks *KeypointSet) (BackPosture, error) {

	pts, err := ks.lookup(metricBack, LeftShoulder, RightShoulder, LeftHip, RightHip)

	if err != nil {
		return BackPosture{}, err
	}

	spine := r3.Sub(midpoint(pts[0], pts[1]), midpoint(pts[2], pts[3]))

	angle, err := angleBetween(metricBack, spine, a.up)

	if err != nil {
		return BackPosture{}, err
	}

	return BackPosture{
		ForwardLeanDegrees: angle,
		Unit:               UnitDegrees,
		Risk:               a.params.BackPosture.Classify(angle),
		Optimal:            angle < a.params.BackPosture.Low,
	}, nil
}
