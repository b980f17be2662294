/*
go-posture computes ergonomic posture metrics and an aggregate injury risk
assessment from a 3D human body reconstruction.

Keypoints are supplied by an external pose estimation model using the MHR70
landmark vocabulary of SAM 3D Body, either by name (ParseKeypoints) or as a
raw joints tensor (KeypointsFromFloat32, KeypointsFromFloat16).  An Analyzer
derives neck flexion, shoulder elevation, elbow angles, wrist extension and
back posture metrics, anthropometric segment lengths and left/right symmetry
scores, then aggregates the per metric risk levels into a RiskAssessment with
risk factors and recommendations.

All thresholds and the model unit to centimeter calibration live in Params,
see DefaultParams for the values used when none are given.

Analysis is a pure function of the keypoints; an Analyzer can be shared
between goroutines and AnalyzeBatch fans a Batch of people out across
workers.

See the command line tool in cmd/posture for example usage.
*/
package posture
