package posture

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Report is the complete result of analysing one KeypointSet.  It is the
// hand off record for downstream narrative or presentation consumers.
type Report struct {
	NeckFlexion       NeckFlexion       `json:"neck_flexion"`
	ShoulderElevation ShoulderElevation `json:"shoulder_elevation"`
	ElbowAngles       ElbowAngles       `json:"elbow_angles"`
	WristExtension    WristExtension    `json:"wrist_extension"`
	BackPosture       BackPosture       `json:"back_posture"`
	Measurements      Measurements      `json:"measurements"`
	Symmetry          Symmetry          `json:"body_symmetry"`
	Risk              RiskAssessment    `json:"risk_assessment"`
}

// Analyzer computes ergonomic metrics from keypoints.  It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	params Params
	// up is the unit vertical axis
	up     r3.Vec
	logger *zap.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger used for debug and warning output
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer returns an Analyzer using the given Params, which are
// validated up front
func NewAnalyzer(p Params, opts ...Option) (*Analyzer, error) {

	if err := p.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		params: p,
		up:     r3.Unit(p.up()),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Params returns the Analyzer configuration
func (a *Analyzer) Params() Params {
	return a.params
}

// Analyze computes every metric for the keypoint set and the aggregate risk.
// Either a complete Report is returned or an error; a
// *MissingLandmarkError lists every required landmark absent from the set.
func (a *Analyzer) Analyze(ks *KeypointSet) (*Report, error) {

	if err := a.checkRequired(ks); err != nil {
		a.logger.Debug("Keypoint set incomplete", zap.Error(err))
		return nil, err
	}

	var (
		r   Report
		err error
	)

	if r.NeckFlexion, err = a.NeckFlexion(ks); err != nil {
		return nil, err
	}

	if r.ShoulderElevation, err = a.ShoulderElevation(ks); err != nil {
		return nil, err
	}

	if r.ElbowAngles, err = a.ElbowAngles(ks); err != nil {
		return nil, err
	}

	if r.WristExtension, err = a.WristExtension(ks); err != nil {
		return nil, err
	}

	if r.BackPosture, err = a.BackPosture(ks); err != nil {
		return nil, err
	}

	if r.Measurements, err = a.Measurements(ks); err != nil {
		return nil, err
	}

	if r.Symmetry, err = a.Symmetry(ks); err != nil {
		return nil, err
	}

	r.Risk = a.AssessRisk(r.NeckFlexion, r.ShoulderElevation, r.ElbowAngles,
		r.WristExtension, r.BackPosture)

	a.logger.Debug("Posture analysed",
		zap.Stringer("risk", r.Risk.Level),
		zap.Float64("score", r.Risk.Score),
		zap.Int("factors", len(r.Risk.Factors)))

	return &r, nil
}

// checkRequired returns a *MissingLandmarkError listing every required
// landmark absent from the set, attributed to the first metric needing one
func (a *Analyzer) checkRequired(ks *KeypointSet) error {

	var (
		metric string
		miss   []Landmark
	)

	seen := make(map[Landmark]bool)

	for _, r := range required {
		for _, l := range ks.missing(r.landmarks...) {
			if seen[l] {
				continue
			}
			seen[l] = true

			if metric == "" {
				metric = r.metric
			}
			miss = append(miss, l)
		}
	}

	if len(miss) == 0 {
		return nil
	}

	return &MissingLandmarkError{Metric: metric, Landmarks: miss}
}
