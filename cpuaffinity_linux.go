//go:build linux

package posture

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SetCPUAffinity pins the program to the given CPU cores, eg: []int{4,5,6,7}
// to keep batch analysis on the fast cores of a big.LITTLE board
func SetCPUAffinity(cores []int) error {

	if len(cores) == 0 {
		return fmt.Errorf("no CPU cores given")
	}

	var set unix.CPUSet

	for _, core := range cores {
		if core < 0 {
			return fmt.Errorf("invalid CPU core %d", core)
		}
		set.Set(core)
	}

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("failed to set CPU affinity: %w", err)
	}

	return nil
}

// GetCPUAffinity returns the CPU cores the program is allowed to run on
func GetCPUAffinity() ([]int, error) {

	var set unix.CPUSet

	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("failed to get CPU affinity: %w", err)
	}

	cores := make([]int, 0, set.Count())

	for core := 0; len(cores) < set.Count(); core++ {
		if set.IsSet(core) {
			cores = append(cores, core)
		}
	}

	return cores, nil
}
