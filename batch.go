package posture

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Batch defines a fixed capacity set of KeypointSets, typically one per
// person detected across a set of images, analysed together by AnalyzeBatch
type Batch struct {
	sets []*KeypointSet
	// size of the batch
	size int
	// cnt is a counter for how many sets have been added with Add()
	cnt int
}

// NewBatch creates a batch able to hold size keypoint sets
func NewBatch(size int) *Batch {
	return &Batch{
		sets: make([]*KeypointSet, size),
		size: size,
	}
}

// Add a KeypointSet to the next free slot of the batch
func (b *Batch) Add(ks *KeypointSet) error {

	// check if batch is full
	if b.cnt >= b.size {
		return ErrBatchFull
	}

	b.sets[b.cnt] = ks
	b.cnt++
	return nil
}

// AddAt places a KeypointSet at the specific index location
func (b *Batch) AddAt(idx int, ks *KeypointSet) error {

	if idx < 0 || idx >= b.size {
		return fmt.Errorf("index %d out of range [0-%d)", idx, b.size)
	}

	b.sets[idx] = ks

	if idx >= b.cnt {
		b.cnt = idx + 1
	}

	return nil
}

// Get returns the KeypointSet at the index, nil if the slot is empty
func (b *Batch) Get(idx int) (*KeypointSet, error) {

	if idx < 0 || idx >= b.size {
		return nil, fmt.Errorf("index %d out of range [0-%d)", idx, b.size)
	}

	return b.sets[idx], nil
}

// Len returns the number of slots in use, up to the highest filled index
func (b *Batch) Len() int {
	return b.cnt
}

// Size returns the capacity of the batch
func (b *Batch) Size() int {
	return b.size
}

// Clear the batch so it can be reused again
func (b *Batch) Clear() {
	for i := range b.sets {
		b.sets[i] = nil
	}
	b.cnt = 0
}

// Result is the outcome of analysing one slot of a Batch
type Result struct {
	Index  int
	Report *Report
	Err    error
}

// AnalyzeBatch analyses every used slot of the batch concurrently, running
// at most Params.Workers analyses at once.  Results are returned in slot
// order and a failed slot does not affect the others; empty slots are
// reported as a *MissingLandmarkError.  The returned error is only set when
// ctx is cancelled before all slots are processed.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, b *Batch) ([]Result, error) {

	results := make([]Result, b.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.params.Workers)

	for i := 0; i < b.Len(); i++ {
		ks := b.sets[i]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if ks == nil {
				ks = &KeypointSet{}
			}

			rep, err := a.Analyze(ks)

			if err != nil {
				a.logger.Warn("Batch slot analysis failed",
					zap.Int("index", i), zap.Error(err))
			}

			results[i] = Result{Index: i, Report: rep, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
