package hdc

import "sync"

// bufPool holds the scratch space of one SequenceEncoder. Encode needs a
// numWords(dims) word buffer for the n-gram it is XOR-accumulating and a
// dims-long counter slice for the majority over all n-grams. Both lengths are
// fixed by the encoder's dimension, so each encoder owns its pool: a shared
// pool would hand a 10000-dim encoder a 500-dim buffer and index past it.
type bufPool struct {
	dims   int
	words  fixedPool[uint64]
	counts fixedPool[int32]
}

func newBufPool(dims int) *bufPool {
	return &bufPool{
		dims:   dims,
		words:  newFixedPool[uint64](numWords(dims)),
		counts: newFixedPool[int32](dims),
	}
}

// getWords returns a zeroed []uint64 slice of length numWords(dims).
func (p *bufPool) getWords() []uint64 { return p.words.get() }

func (p *bufPool) putWords(buf []uint64) { p.words.put(buf) }

// getCounts returns a zeroed []int32 slice of length dims.
func (p *bufPool) getCounts() []int32 { return p.counts.get() }

func (p *bufPool) putCounts(buf []int32) { p.counts.put(buf) }

// fixedPool recycles slices of one length. get clears the slice, since the
// previous Encode left its partial n-gram or vote tally in it.
type fixedPool[T uint64 | int32] struct {
	size int
	pool *sync.Pool // *[]T
}

func newFixedPool[T uint64 | int32](size int) fixedPool[T] {
	return fixedPool[T]{
		size: size,
		pool: &sync.Pool{
			New: func() any {
				buf := make([]T, size)
				return &buf
			},
		},
	}
}

func (p fixedPool[T]) get() []T {
	buf := *p.pool.Get().(*[]T)
	clear(buf)
	return buf
}

// put drops slices of the wrong length instead of poisoning the pool.
func (p fixedPool[T]) put(buf []T) {
	if len(buf) != p.size {
		return
	}
	p.pool.Put(&buf)
}
