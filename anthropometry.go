package posture

// Measurements holds body segment lengths in centimeters
type Measurements struct {
	ShoulderBreadthCM float64 `json:"shoulder_breadth_cm"`
	TorsoHeightCM     float64 `json:"torso_height_cm"`
	ArmLengthCM       float64 `json:"arm_length_cm"`
	LegLengthCM       float64 `json:"leg_length_cm"`
}

// Measurements derives anthropometric segment lengths.  Arm and leg lengths
// follow the joint chain (shoulder-elbow-wrist, hip-knee-ankle) and are
// averaged over both sides.  Model unit distances are converted with
// Params.CentimetersPerUnit.
func (a *Analyzer) Measurements(ks *KeypointSet) (Measurements, error) {

	pts, err := ks.lookup(metricMeasurements,
		LeftShoulder, RightShoulder, LeftHip, RightHip)

	if err != nil {
		return Measurements{}, err
	}

	arm, err := a.chainLength(ks, func(s side) []Landmark {
		return []Landmark{s.shoulder, s.elbow, s.wrist}
	})

	if err != nil {
		return Measurements{}, err
	}

	leg, err := a.chainLength(ks, func(s side) []Landmark {
		return []Landmark{s.hip, s.knee, s.ankle}
	})

	if err != nil {
		return Measurements{}, err
	}

	scale := a.params.CentimetersPerUnit

	return Measurements{
		ShoulderBreadthCM: distance(pts[0], pts[1]) * scale,
		TorsoHeightCM:     distance(midpoint(pts[0], pts[1]), midpoint(pts[2], pts[3])) * scale,
		ArmLengthCM:       arm * scale,
		LegLengthCM:       leg * scale,
	}, nil
}

// chainLength returns the mean over both sides of the summed segment lengths
// along the landmark chain selected by joints
func (a *Analyzer) chainLength(ks *KeypointSet, joints func(side) []Landmark) (float64, error) {

	var total float64

	for _, s := range []side{leftSide, rightSide} {
		pts, err := ks.lookup(metricMeasurements, joints(s)...)

		if err != nil {
			return 0, err
		}

		for i := 1; i < len(pts); i++ {
			total += distance(pts[i-1], pts[i])
		}
	}

	return total / 2, nil
}
