package posture

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Band holds the two cut points used to classify a metric value into a
// RiskLevel.  Values below Low are low risk, values above High are high risk
// and anything in between (inclusive) is medium risk.
type Band struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Classify returns the RiskLevel of value within the band
func (b Band) Classify(value float64) RiskLevel {
	switch {
	case value < b.Low:
		return RiskLow
	case value <= b.High:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Params defines the calibration and threshold settings of the Analyzer
type Params struct {
	// NeckFlexion is the band in degrees of head-neck deviation from vertical
	NeckFlexion Band `yaml:"neck_flexion"`
	// ShoulderElevation is the band in percent of shoulder height difference
	// relative to shoulder breadth
	ShoulderElevation Band `yaml:"shoulder_elevation"`
	// ElbowOptimalMin and ElbowOptimalMax bound the optimal elbow angle in
	// degrees, inclusive
	ElbowOptimalMin float64 `yaml:"elbow_optimal_min"`
	ElbowOptimalMax float64 `yaml:"elbow_optimal_max"`
	// WristExtension is the band in degrees of average wrist deviation
	WristExtension Band `yaml:"wrist_extension"`
	// BackPosture is the band in degrees of forward trunk lean
	BackPosture Band `yaml:"back_posture"`
	// OverallMedium and OverallHigh are the risk score cut points for the
	// aggregate risk level
	OverallMedium float64 `yaml:"overall_medium"`
	OverallHigh   float64 `yaml:"overall_high"`
	// CentimetersPerUnit scales model unit distances to centimeters
	CentimetersPerUnit float64 `yaml:"centimeters_per_unit"`
	// UpAxis is the direction of vertical (against gravity) in the keypoint
	// coordinate frame
	UpAxis [3]float64 `yaml:"up_axis"`
	// Workers is the number of concurrent analyses run by AnalyzeBatch
	Workers int `yaml:"workers"`
	// TrendTolerance is the risk score change Compare treats as stable
	TrendTolerance float64 `yaml:"trend_tolerance"`
}

// DefaultParams returns an instance of Params configured with default values
// for seated office work:
// - Neck Flexion: 20 / 45 degrees
// - Shoulder Elevation: 5 / 15 percent
// - Elbow Optimal: 70 to 110 degrees
// - Wrist Extension: 15 / 30 degrees
// - Back Posture: 10 / 25 degrees
// - Overall Risk Score: 0.5 / 1.2
// - Centimeters Per Unit: 100 (keypoints in metres)
// - Up Axis: +Y
func DefaultParams() Params {
	return Params{
		NeckFlexion:        Band{Low: 20, High: 45},
		ShoulderElevation:  Band{Low: 5, High: 15},
		ElbowOptimalMin:    70,
		ElbowOptimalMax:    110,
		WristExtension:     Band{Low: 15, High: 30},
		BackPosture:        Band{Low: 10, High: 25},
		OverallMedium:      0.5,
		OverallHigh:        1.2,
		CentimetersPerUnit: 100,
		UpAxis:             [3]float64{0, 1, 0},
		Workers:            runtime.NumCPU(),
		TrendTolerance:     0.1,
	}
}

// LoadParams reads Params from a YAML file.  Fields absent from the file keep
// their default value.
func LoadParams(path string) (Params, error) {

	p := DefaultParams()

	data, err := os.ReadFile(path)

	if err != nil {
		return p, fmt.Errorf("failed to read params: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse params: %w", err)
	}

	if err := p.Validate(); err != nil {
		return p, err
	}

	return p, nil
}

// Validate checks the Params are usable, returning a *ConfigurationError
// naming the first offending field
func (p Params) Validate() error {

	bands := []struct {
		field string
		band  Band
		max   float64
	}{
		{"neck_flexion", p.NeckFlexion, 180},
		{"shoulder_elevation", p.ShoulderElevation, 100},
		{"wrist_extension", p.WristExtension, 180},
		{"back_posture", p.BackPosture, 180},
	}

	for _, b := range bands {
		if err := validateRange(b.field, b.band.Low, b.band.High, b.max); err != nil {
			return err
		}
	}

	if err := validateRange("elbow_optimal", p.ElbowOptimalMin,
		p.ElbowOptimalMax, 180); err != nil {
		return err
	}

	if err := validateRange("overall", p.OverallMedium, p.OverallHigh,
		RiskHigh.Weight()); err != nil {
		return err
	}

	if !(p.CentimetersPerUnit > 0) || math.IsInf(p.CentimetersPerUnit, 0) {
		return &ConfigurationError{
			Field:  "centimeters_per_unit",
			Reason: fmt.Sprintf("must be a positive finite number, got %v", p.CentimetersPerUnit),
		}
	}

	up := p.up()

	if !finite(up) || r3.Norm(up) == 0 {
		return &ConfigurationError{
			Field:  "up_axis",
			Reason: fmt.Sprintf("must be a finite non-zero vector, got %v", p.UpAxis),
		}
	}

	if p.Workers < 1 {
		return &ConfigurationError{
			Field:  "workers",
			Reason: fmt.Sprintf("must be at least 1, got %d", p.Workers),
		}
	}

	if !(p.TrendTolerance >= 0) {
		return &ConfigurationError{
			Field:  "trend_tolerance",
			Reason: fmt.Sprintf("must not be negative, got %v", p.TrendTolerance),
		}
	}

	return nil
}

// up returns the configured up axis as a vector
func (p Params) up() r3.Vec {
	return r3.Vec{X: p.UpAxis[0], Y: p.UpAxis[1], Z: p.UpAxis[2]}
}

// validateRange checks 0 < lo < hi <= max
func validateRange(field string, lo, hi, max float64) error {

	if math.IsNaN(lo) || math.IsNaN(hi) || lo <= 0 || hi > max {
		return &ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("cut points must lie in (0, %v], got %v and %v", max, lo, hi),
		}
	}

	if lo >= hi {
		return &ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("inverted range, %v is not below %v", lo, hi),
		}
	}

	return nil
}
