//go:build !linux

package posture

import (
	"errors"
)

var errAffinityUnsupported = errors.New("CPU affinity is only supported on linux")

// SetCPUAffinity pins the program to the given CPU cores.  Only supported on
// linux.
func SetCPUAffinity(cores []int) error {
	return errAffinityUnsupported
}

// GetCPUAffinity returns the CPU cores the program is allowed to run on.
// Only supported on linux.
func GetCPUAffinity() ([]int, error) {
	return nil, errAffinityUnsupported
}
