package posture

import (
	"fmt"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/spatial/r3"
)

var f16LookupTable [65536]float32

func init() {
	// precompute float16 lookup table for faster conversion to float32
	for i := range f16LookupTable {
		f16 := float16.Frombits(uint16(i))
		f16LookupTable[i] = f16.Float32()
	}
}

// jointsTensorLen is the number of values in a (70,3) MHR70 joints tensor
const jointsTensorLen = LandmarkCount * 3

// KeypointsFromFloat32 builds a KeypointSet from a flattened (70,3) MHR70
// joints tensor as output by the pose model
func KeypointsFromFloat32(joints []float32) (*KeypointSet, error) {

	if len(joints) != jointsTensorLen {
		return nil, fmt.Errorf("joints tensor has %d values, expected %d",
			len(joints), jointsTensorLen)
	}

	ks := &KeypointSet{
		points: make(map[Landmark]r3.Vec, LandmarkCount),
	}

	for i := 0; i < LandmarkCount; i++ {
		ks.points[Landmark(i)] = r3.Vec{
			X: float64(joints[i*3+0]),
			Y: float64(joints[i*3+1]),
			Z: float64(joints[i*3+2]),
		}
	}

	return ks, nil
}

// KeypointsFromFloat16 builds a KeypointSet from a flattened (70,3) MHR70
// joints tensor holding IEEE 754 half precision bit patterns, the layout
// produced when the pose model runs in fp16
func KeypointsFromFloat16(joints []uint16) (*KeypointSet, error) {

	if len(joints) != jointsTensorLen {
		return nil, fmt.Errorf("joints tensor has %d values, expected %d",
			len(joints), jointsTensorLen)
	}

	f32 := make([]float32, len(joints))

	for i, bits := range joints {
		f32[i] = f16LookupTable[bits]
	}

	return KeypointsFromFloat32(f32)
}
