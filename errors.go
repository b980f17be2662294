package posture

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBatchFull is returned when adding to a Batch with no free slots
	ErrBatchFull = errors.New("batch full")
	// ErrNoReports is returned when summarising an empty set of reports
	ErrNoReports = errors.New("no reports")
)

// MissingLandmarkError is returned when landmarks required by a metric are
// absent from the KeypointSet
type MissingLandmarkError struct {
	// Metric is the name of the metric that first required the landmarks
	Metric string
	// Landmarks lists every absent landmark
	Landmarks []Landmark
}

func (e *MissingLandmarkError) Error() string {
	names := make([]string, len(e.Landmarks))

	for i, l := range e.Landmarks {
		names[i] = l.String()
	}

	return fmt.Sprintf("%s: missing landmark(s) %s", e.Metric,
		strings.Join(names, ", "))
}

// DegenerateGeometryError is returned when required landmarks are present
// but produce unusable geometry, such as coincident points or non-finite
// coordinates
type DegenerateGeometryError struct {
	Metric string
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: degenerate geometry: %s", e.Metric, e.Reason)
}

// ConfigurationError is returned when Params fail validation
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}
