package posture

import (
	"sync"
)

// BatchPool is a pool of batches
type BatchPool struct {
	// pool of batches
	batches chan *Batch
	// size of pool
	size  int
	close sync.Once
}

// NewBatchPool returns a pool of size Batches each holding batchSize
// keypoint sets
func NewBatchPool(size, batchSize int) *BatchPool {

	p := &BatchPool{
		batches: make(chan *Batch, size),
		size:    size,
	}

	for i := 0; i < size; i++ {
		// attach to pool
		p.Return(NewBatch(batchSize))
	}

	return p
}

// Gets a batch from the pool
func (p *BatchPool) Get() *Batch {
	return <-p.batches
}

// Return a batch to the pool.  Must not be called after Close.
func (p *BatchPool) Return(batch *Batch) {

	batch.Clear()

	select {
	case p.batches <- batch:
	default:
		// pool is full or closed
	}
}

// Close the pool, releasing all batches in it
func (p *BatchPool) Close() {
	p.close.Do(func() {
		// close channel
		close(p.batches)

		// drain remaining batches so their keypoint sets can be collected
		for next := range p.batches {
			next.Clear()
		}
	})
}
