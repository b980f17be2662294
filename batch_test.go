package posture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBatchAdd(t *testing.T) {
	ks := neutralPose().keypoints(t)
	b := NewBatch(2)

	assert.Equal(t, 2, b.Size())
	assert.Equal(t, 0, b.Len())

	require.NoError(t, b.Add(ks))
	require.NoError(t, b.Add(ks))
	assert.ErrorIs(t, b.Add(ks), ErrBatchFull)
	assert.Equal(t, 2, b.Len())

	b.Clear()
	assert.Equal(t, 0, b.Len())

	got, err := b.Get(0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBatchAddAt(t *testing.T) {
	ks := neutralPose().keypoints(t)
	b := NewBatch(4)

	require.NoError(t, b.AddAt(2, ks))
	assert.Equal(t, 3, b.Len())

	assert.Error(t, b.AddAt(4, ks))
	assert.Error(t, b.AddAt(-1, ks))

	_, err := b.Get(5)
	assert.Error(t, err)

	got, err := b.Get(2)
	require.NoError(t, err)
	assert.Same(t, ks, got)
}

func TestAnalyzeBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := DefaultParams()
	p.Workers = 3

	a, err := NewAnalyzer(p)
	require.NoError(t, err)

	forward := neutralPose()
	forward.setBack(28)
	forward.setNeck(35)

	b := NewBatch(8)
	require.NoError(t, b.Add(neutralPose().keypoints(t)))
	require.NoError(t, b.Add(forward.keypoints(t)))
	require.NoError(t, b.Add(neutralPose().keypoints(t).Without(LeftWrist)))
	// slot 3 left empty
	require.NoError(t, b.AddAt(4, neutralPose().keypoints(t)))

	results, err := a.AnalyzeBatch(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, RiskLow, results[0].Report.Risk.Level)

	require.NoError(t, results[1].Err)
	assert.GreaterOrEqual(t, results[1].Report.Risk.Level, RiskMedium)

	var mle *MissingLandmarkError
	require.True(t, errors.As(results[2].Err, &mle))
	assert.Equal(t, []Landmark{LeftWrist}, mle.Landmarks)
	assert.Nil(t, results[2].Report)

	assert.True(t, errors.As(results[3].Err, &mle))
	assert.Nil(t, results[3].Report)

	require.NoError(t, results[4].Err)

	// batch results match single analysis
	single, err := a.Analyze(forward.keypoints(t))
	require.NoError(t, err)
	assert.Equal(t, single, results[1].Report)
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := newTestAnalyzer(t)

	b := NewBatch(4)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Add(neutralPose().keypoints(t)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := a.AnalyzeBatch(ctx, b)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestBatchPool(t *testing.T) {
	pool := NewBatchPool(2, 3)
	defer pool.Close()

	b1 := pool.Get()
	b2 := pool.Get()
	assert.NotSame(t, b1, b2)
	assert.Equal(t, 3, b1.Size())

	require.NoError(t, b1.Add(neutralPose().keypoints(t)))
	pool.Return(b1)

	// returned batches come back cleared
	again := pool.Get()
	assert.Same(t, b1, again)
	assert.Equal(t, 0, again.Len())

	pool.Return(again)
	pool.Return(b2)
}
