// Package knn classifies hypervectors by majority vote over their k nearest
// training vectors in Hamming distance.
package knn

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Amansingh-afk/hdseq/hdc"
)

// Neighbors returns the k training vectors closest to query, ordered by
// ascending distance and then by training-set index.
// A k larger than the training set is clamped: every vector is a neighbor.
func Neighbors(train []hdc.Vector, query hdc.Vector, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidNeighborCount, k)
	}
	if len(train) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if k > len(train) {
		k = len(train)
	}
	h := make(maxHeap, 0, k)
	for i, v := range train {
		if v.Dims() != query.Dims() {
			return nil, fmt.Errorf("%w: training vector %d has %d dims, query has %d",
				hdc.ErrDimensionMismatch, i, v.Dims(), query.Dims())
		}
		h.offer(Neighbor{Index: i, Distance: hdc.Hamming(v, query)}, k)
	}
	return h.sorted(), nil
}

// Vote returns the label with the most votes among neighbors, where each
// neighbor votes for labels[neighbor.Index]. Ties go to the lowest label.
// Only labels that received a vote are tallied, so sparse labels cost
// nothing beyond k map entries.
func Vote(labels []int, neighbors []Neighbor) (int, error) {
	if len(neighbors) == 0 {
		return 0, ErrEmptyTrainingSet
	}
	if err := checkLabels(labels); err != nil {
		return 0, err
	}
	votes := make(map[int]int, len(neighbors))
	for _, nb := range neighbors {
		if nb.Index < 0 || nb.Index >= len(labels) {
			return 0, fmt.Errorf("%w: neighbor index %d, %d labels", ErrLabelMismatch, nb.Index, len(labels))
		}
		votes[labels[nb.Index]]++
	}
	best, bestVotes := 0, 0
	for label, v := range votes {
		if v > bestVotes || (v == bestVotes && label < best) {
			best, bestVotes = label, v
		}
	}
	return best, nil
}

// Classify predicts the label of query from its k nearest training vectors.
func Classify(train []hdc.Vector, labels []int, query hdc.Vector, k int) (int, error) {
	if err := checkTrainingSet(train, labels); err != nil {
		return 0, err
	}
	nbs, err := Neighbors(train, query, k)
	if err != nil {
		return 0, err
	}
	return Vote(labels, nbs)
}

// ClassifyAll classifies every query, fanning out one unit of work per query
// across GOMAXPROCS workers. Results are in query order; the first error
// aborts the batch.
func ClassifyAll(train []hdc.Vector, labels []int, queries []hdc.Vector, k int) ([]int, error) {
	return classifyAll(train, labels, queries, k, runtime.GOMAXPROCS(0))
}

func classifyAll(train []hdc.Vector, labels []int, queries []hdc.Vector, k, workers int) ([]int, error) {
	if err := checkTrainingSet(train, labels); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidNeighborCount, k)
	}
	if workers <= 0 {
		workers = 1
	}
	out := make([]int, len(queries))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, q := range queries {
		g.Go(func() error {
			label, err := Classify(train, labels, q, k)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			out[i] = label
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Accuracy returns the fraction of predicted labels equal to truth.
func Accuracy(predicted, truth []int) (float64, error) {
	if len(predicted) != len(truth) {
		return 0, fmt.Errorf("%w: %d predictions, %d labels", ErrLabelMismatch, len(predicted), len(truth))
	}
	if len(truth) == 0 {
		return 0, ErrNoPredictions
	}
	var correct int
	for i := range truth {
		if predicted[i] == truth[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth)), nil
}

func checkTrainingSet(train []hdc.Vector, labels []int) error {
	if len(train) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(train) != len(labels) {
		return fmt.Errorf("%w: %d vectors, %d labels", ErrLabelMismatch, len(train), len(labels))
	}
	return checkLabels(labels)
}

func checkLabels(labels []int) error {
	for i, l := range labels {
		if l < 0 {
			return fmt.Errorf("%w: %d at index %d", ErrInvalidLabel, l, i)
		}
	}
	return nil
}
