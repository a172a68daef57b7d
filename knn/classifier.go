package knn

import (
	"fmt"
	"sync"

	"github.com/Amansingh-afk/hdseq/hdc"
)

// Options configures a Classifier.
type Options struct {
	K       int // neighbors consulted per query (default 1)
	Workers int // parallelism of ClassifyAll (default 1)
}

// DefaultOptions returns the 1-nearest-neighbor configuration.
func DefaultOptions() Options {
	return Options{K: 1, Workers: 1}
}

// Example is a labeled encoded sequence.
type Example struct {
	Vector hdc.Vector
	Label  int
}

// Stats is a point-in-time snapshot of classifier metrics.
type Stats struct {
	Examples    int
	Queries     uint64
	Failures    uint64
	Predictions map[int]uint64 // predicted label → count
}

// Classifier is a thread-safe, insertion-ordered training set that answers
// k-nearest-neighbor queries. Insertion order is the tie-break order.
type Classifier struct {
	mu      sync.RWMutex
	dims    int
	vecs    []hdc.Vector
	labels  []int
	k       int
	workers int

	statsMu     sync.Mutex
	queries     uint64
	failures    uint64
	predictions map[int]uint64
}

// NewClassifier creates an empty Classifier.
func NewClassifier(opts Options) (*Classifier, error) {
	if opts.K <= 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidNeighborCount, opts.K)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Classifier{
		k:           opts.K,
		workers:     opts.Workers,
		predictions: make(map[int]uint64),
	}, nil
}

// Add appends labeled examples to the training set. The first example fixes
// the dimension every later one must share. Either all examples are added or
// none is.
func (c *Classifier) Add(examples ...Example) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dims := c.dims
	for i, e := range examples {
		if e.Label < 0 {
			return fmt.Errorf("%w: %d at example %d", ErrInvalidLabel, e.Label, i)
		}
		if e.Vector.Dims() == 0 {
			return fmt.Errorf("%w: example %d has no vector", hdc.ErrInvalidDimension, i)
		}
		if dims == 0 {
			dims = e.Vector.Dims()
		}
		if e.Vector.Dims() != dims {
			return fmt.Errorf("%w: example %d has %d dims, want %d",
				hdc.ErrDimensionMismatch, i, e.Vector.Dims(), dims)
		}
	}
	c.dims = dims
	for _, e := range examples {
		c.vecs = append(c.vecs, e.Vector)
		c.labels = append(c.labels, e.Label)
	}
	return nil
}

// Len returns the number of training examples.
func (c *Classifier) Len() int {
	c.mu.RLock()
	n := len(c.vecs)
	c.mu.RUnlock()
	return n
}

// K returns the configured neighbor count.
func (c *Classifier) K() int { return c.k }

// Classify predicts the label of query.
func (c *Classifier) Classify(query hdc.Vector) (int, error) {
	c.mu.RLock()
	label, err := Classify(c.vecs, c.labels, query, c.k)
	c.mu.RUnlock()

	c.record(1, err, label)
	return label, err
}

// ClassifyAll predicts a label for every query, in query order.
func (c *Classifier) ClassifyAll(queries []hdc.Vector) ([]int, error) {
	c.mu.RLock()
	labels, err := classifyAll(c.vecs, c.labels, queries, c.k, c.workers)
	c.mu.RUnlock()

	c.record(len(queries), err, labels...)
	return labels, err
}

// Reset drops every training example and zeroes the metrics.
func (c *Classifier) Reset() {
	c.mu.Lock()
	c.dims = 0
	c.vecs = nil
	c.labels = nil
	c.mu.Unlock()

	c.statsMu.Lock()
	c.queries, c.failures = 0, 0
	c.predictions = make(map[int]uint64)
	c.statsMu.Unlock()
}

// Stats returns a point-in-time snapshot of classifier metrics.
func (c *Classifier) Stats() Stats {
	n := c.Len()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	preds := make(map[int]uint64, len(c.predictions))
	for l, cnt := range c.predictions {
		preds[l] = cnt
	}
	return Stats{
		Examples:    n,
		Queries:     c.queries,
		Failures:    c.failures,
		Predictions: preds,
	}
}

// record counts n queries. A failed batch yields no labels, so all n of
// its queries count as failures.
func (c *Classifier) record(n int, err error, labels ...int) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.queries += uint64(n)
	if err != nil {
		c.failures += uint64(n)
		return
	}
	for _, l := range labels {
		c.predictions[l]++
	}
}
