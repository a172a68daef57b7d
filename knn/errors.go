package knn

import "errors"

var (
	// ErrInvalidNeighborCount is returned when k is zero or negative.
	ErrInvalidNeighborCount = errors.New("knn: invalid neighbor count")
	// ErrEmptyTrainingSet is returned when classification has no labeled examples.
	ErrEmptyTrainingSet = errors.New("knn: empty training set")
	// ErrLabelMismatch is returned when vectors and labels differ in length.
	ErrLabelMismatch = errors.New("knn: vector and label counts differ")
	// ErrInvalidLabel is returned for a negative class label.
	ErrInvalidLabel = errors.New("knn: invalid label")
	// ErrNoPredictions is returned when accuracy is asked of an empty batch.
	ErrNoPredictions = errors.New("knn: no predictions to score")
)
