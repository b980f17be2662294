package posture

import (
	"gonum.org/v1/gonum/stat"
)

// Stat is the mean and sample standard deviation of a metric over a
// population
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summary holds aggregate statistics over the reports of many subjects
type Summary struct {
	Subjects int `json:"total_subjects"`

	// LevelCounts and LevelPercent are keyed by overall risk level name
	LevelCounts      map[string]int     `json:"risk_level_counts"`
	LevelPercent     map[string]float64 `json:"risk_level_percent"`
	NeckFlexion      Stat               `json:"neck_flexion_degrees"`
	ShoulderAsym     Stat               `json:"shoulder_asymmetry_percent"`
	WristDeviation   Stat               `json:"wrist_deviation_degrees"`
	ForwardLean      Stat               `json:"forward_lean_degrees"`
	Symmetry         Stat               `json:"symmetry_score"`
	RiskScore        Stat               `json:"risk_score"`
	ElbowNonOptimal  int                `json:"elbow_non_optimal"`
	TopRiskMetric    string             `json:"top_risk_metric,omitempty"`
}

// series extracts one value per report
func series(reports []*Report, f func(*Report) float64) []float64 {
	out := make([]float64, len(reports))
	for i, r := range reports {
		out[i] = f(r)
	}
	return out
}

// describe returns the mean and standard deviation of x.  A single sample
// has a standard deviation of zero.
func describe(x []float64) Stat {
	if len(x) == 1 {
		return Stat{Mean: x[0]}
	}
	mean, std := stat.MeanStdDev(x, nil)
	return Stat{Mean: mean, StdDev: std}
}

// Summarize computes population statistics over the reports
func Summarize(reports []*Report) (Summary, error) {

	if len(reports) == 0 {
		return Summary{}, ErrNoReports
	}

	s := Summary{
		Subjects:     len(reports),
		LevelCounts:  map[string]int{},
		LevelPercent: map[string]float64{},
	}

	for _, lvl := range []RiskLevel{RiskLow, RiskMedium, RiskHigh} {
		s.LevelCounts[lvl.String()] = 0
	}

	// count of non-low occurrences per metric, in reporting order
	metricHits := []struct {
		name string
		hits int
	}{{metricNeck, 0}, {metricShoulder, 0}, {metricElbow, 0}, {metricWrist, 0}, {metricBack, 0}}

	for _, r := range reports {
		s.LevelCounts[r.Risk.Level.String()]++

		elbowBad := !r.ElbowAngles.Left.Optimal || !r.ElbowAngles.Right.Optimal

		if elbowBad {
			s.ElbowNonOptimal++
		}

		for i, bad := range []bool{
			r.NeckFlexion.Risk > RiskLow,
			r.ShoulderElevation.Risk > RiskLow,
			elbowBad,
			r.WristExtension.Risk > RiskLow,
			r.BackPosture.Risk > RiskLow,
		} {
			if bad {
				metricHits[i].hits++
			}
		}
	}

	for k, v := range s.LevelCounts {
		s.LevelPercent[k] = float64(v) / float64(len(reports)) * 100
	}

	top := 0

	for _, m := range metricHits {
		if m.hits > top {
			top = m.hits
			s.TopRiskMetric = m.name
		}
	}

	s.NeckFlexion = describe(series(reports, func(r *Report) float64 { return r.NeckFlexion.AngleDegrees }))
	s.ShoulderAsym = describe(series(reports, func(r *Report) float64 { return r.ShoulderElevation.AsymmetryPercent }))
	s.WristDeviation = describe(series(reports, func(r *Report) float64 { return r.WristExtension.AverageDeviation }))
	s.ForwardLean = describe(series(reports, func(r *Report) float64 { return r.BackPosture.ForwardLeanDegrees }))
	s.Symmetry = describe(series(reports, func(r *Report) float64 { return r.Symmetry.OverallScore }))
	s.RiskScore = describe(series(reports, func(r *Report) float64 { return r.Risk.Score }))

	return s, nil
}

// Trend is the direction of change between measurements
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Comparison holds the change of the current report against the mean of
// previous reports.  Positive deltas mean the value grew.
type Comparison struct {
	Previous            int     `json:"previous_count"`
	NeckFlexionDelta    float64 `json:"neck_flexion_delta"`
	ShoulderAsymDelta   float64 `json:"shoulder_asymmetry_delta"`
	WristDeviationDelta float64 `json:"wrist_deviation_delta"`
	ForwardLeanDelta    float64 `json:"forward_lean_delta"`
	SymmetryDelta       float64 `json:"symmetry_delta"`
	RiskScoreDelta      float64 `json:"risk_score_delta"`
	Trend               Trend   `json:"trend"`
}

// Compare measures how the current report differs from the average of the
// previous reports.  The trend follows the risk score: a drop larger than
// Params.TrendTolerance is improving, a rise larger than it is declining.
func (a *Analyzer) Compare(current *Report, previous []*Report) (Comparison, error) {

	if current == nil || len(previous) == 0 {
		return Comparison{}, ErrNoReports
	}

	mean := func(f func(*Report) float64) float64 {
		return stat.Mean(series(previous, f), nil)
	}

	c := Comparison{
		Previous:            len(previous),
		NeckFlexionDelta:    current.NeckFlexion.AngleDegrees - mean(func(r *Report) float64 { return r.NeckFlexion.AngleDegrees }),
		ShoulderAsymDelta:   current.ShoulderElevation.AsymmetryPercent - mean(func(r *Report) float64 { return r.ShoulderElevation.AsymmetryPercent }),
		WristDeviationDelta: current.WristExtension.AverageDeviation - mean(func(r *Report) float64 { return r.WristExtension.AverageDeviation }),
		ForwardLeanDelta:    current.BackPosture.ForwardLeanDegrees - mean(func(r *Report) float64 { return r.BackPosture.ForwardLeanDegrees }),
		SymmetryDelta:       current.Symmetry.OverallScore - mean(func(r *Report) float64 { return r.Symmetry.OverallScore }),
		RiskScoreDelta:      current.Risk.Score - mean(func(r *Report) float64 { return r.Risk.Score }),
	}

	switch {
	case c.RiskScoreDelta < -a.params.TrendTolerance:
		c.Trend = TrendImproving
	case c.RiskScoreDelta > a.params.TrendTolerance:
		c.Trend = TrendDeclining
	default:
		c.Trend = TrendStable
	}

	return c, nil
}
