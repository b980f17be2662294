package posture

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// RiskLevel is the ordinal risk classification of a metric or of a whole
// posture
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

// String returns the lower case name of the risk level
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return fmt.Sprintf("risk(%d)", int(r))
}

// Weight returns the numeric weight of the risk level used for the
// aggregate risk score
func (r RiskLevel) Weight() float64 {
	return float64(r)
}

// MarshalJSON encodes the risk level by name
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a risk level name
func (r *RiskLevel) UnmarshalJSON(data []byte) error {

	var s string

	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "low":
		*r = RiskLow
	case "medium":
		*r = RiskMedium
	case "high":
		*r = RiskHigh
	default:
		return fmt.Errorf("unknown risk level %q", s)
	}

	return nil
}

// RiskAssessment is the aggregate risk derived from the metric records
type RiskAssessment struct {
	Level           RiskLevel `json:"overall_risk"`
	Score           float64   `json:"risk_score"`
	Factors         []string  `json:"risk_factors"`
	Recommendations []string  `json:"recommendations"`
}

// recommendation texts keyed by metric, in the order they are reported
const (
	recNeck     = "Adjust monitor height to eye level to reduce neck strain"
	recShoulder = "Ensure shoulders are relaxed and level; adjust chair armrests"
	recElbow    = "Position keyboard/mouse to maintain 90° elbow angle"
	recWrist    = "Use wrist rest and maintain neutral wrist position"
	recBack     = "Adjust chair back support; sit upright with lumbar support"
	recSound    = "Posture appears ergonomically sound; maintain current setup"
)

// AssessRisk combines the metric records into an overall risk assessment.
// The score is the mean weight of six checks: neck, shoulder, each elbow
// side, wrist and back.
func (a *Analyzer) AssessRisk(neck NeckFlexion, shoulder ShoulderElevation,
	elbow ElbowAngles, wrist WristExtension, back BackPosture) RiskAssessment {

	p := a.params

	weights := []float64{
		neck.Risk.Weight(),
		shoulder.Risk.Weight(),
		elbow.Left.Risk.Weight(),
		elbow.Right.Risk.Weight(),
		wrist.Risk.Weight(),
		back.Risk.Weight(),
	}

	score := floats.Sum(weights) / float64(len(weights))

	var level RiskLevel

	switch {
	case score < p.OverallMedium:
		level = RiskLow
	case score < p.OverallHigh:
		level = RiskMedium
	default:
		level = RiskHigh
	}

	factors := make([]string, 0)
	recs := make([]string, 0)

	if neck.Risk > RiskLow {
		factors = append(factors, fmt.Sprintf(
			"Neck flexion of %.1f° exceeds optimal range of %g°",
			neck.AngleDegrees, p.NeckFlexion.Low))
		recs = append(recs, recNeck)
	}

	if shoulder.Risk > RiskLow {
		factors = append(factors, fmt.Sprintf(
			"Shoulder asymmetry of %.1f%% exceeds optimal range of %g%%",
			shoulder.AsymmetryPercent, p.ShoulderElevation.Low))
		recs = append(recs, recShoulder)
	}

	elbowFactor := false

	for _, s := range []struct {
		name string
		side ElbowSide
	}{{"Left", elbow.Left}, {"Right", elbow.Right}} {
		if s.side.Optimal {
			continue
		}
		factors = append(factors, fmt.Sprintf(
			"%s elbow angle of %.1f° outside optimal range of %g-%g°",
			s.name, s.side.AngleDegrees, p.ElbowOptimalMin, p.ElbowOptimalMax))
		elbowFactor = true
	}

	if elbowFactor {
		recs = append(recs, recElbow)
	}

	if wrist.Risk > RiskLow {
		factors = append(factors, fmt.Sprintf(
			"Wrist deviation of %.1f° exceeds optimal range of %g°",
			wrist.AverageDeviation, p.WristExtension.Low))
		recs = append(recs, recWrist)
	}

	if back.Risk > RiskLow {
		factors = append(factors, fmt.Sprintf(
			"Back forward lean of %.1f° exceeds optimal range of %g°",
			back.ForwardLeanDegrees, p.BackPosture.Low))
		recs = append(recs, recBack)
	}

	if len(recs) == 0 {
		recs = append(recs, recSound)
	}

	return RiskAssessment{
		Level:           level,
		Score:           score,
		Factors:         factors,
		Recommendations: recs,
	}
}
