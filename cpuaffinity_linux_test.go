//go:build linux

package posture

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUAffinity(t *testing.T) {
	// affinity is per thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	orig, err := GetCPUAffinity()
	require.NoError(t, err)
	require.NotEmpty(t, orig)

	defer func() {
		require.NoError(t, SetCPUAffinity(orig))
	}()

	require.NoError(t, SetCPUAffinity(orig[:1]))

	got, err := GetCPUAffinity()
	require.NoError(t, err)
	assert.Equal(t, orig[:1], got)

	assert.Error(t, SetCPUAffinity(nil))
	assert.Error(t, SetCPUAffinity([]int{-1}))
}
