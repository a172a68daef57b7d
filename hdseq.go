// Package hdseq classifies symbol sequences with hyperdimensional computing.
// Sequences are encoded to binary hypervectors from position-bound n-grams;
// Predict returns the majority label of the k nearest training sequences in
// Hamming distance.
//
// Basic usage:
//
//	m, _ := hdseq.New(hdseq.WithNGramSize(3), hdseq.WithSeed(1))
//	_ = m.Train(ctx, [][]int{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 0}}, []int{0, 1})
//	label, _ := m.Predict([]int{1, 2, 3, 4, 6})
package hdseq

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Amansingh-afk/hdseq/hdc"
	"github.com/Amansingh-afk/hdseq/knn"
)

// Stats is a point-in-time snapshot of Model metrics.
type Stats struct {
	Dims        int
	NGramSize   int
	Symbols     int
	K           int
	Examples    int
	Queries     uint64
	Failures    uint64
	Predictions map[int]uint64
}

// Report is the outcome of Evaluate.
type Report struct {
	Predictions []int
	Accuracy    float64
}

// Model is an encoder plus a labeled training set. It is safe for concurrent use.
type Model struct {
	enc     *hdc.SequenceEncoder
	clf     *knn.Classifier
	workers int
	log     *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Model.
type Option func(*modelOptions)

type modelOptions struct {
	dims    int
	ngram   int
	symbols int
	k       int
	seed    int64
	workers int
	logger  *slog.Logger
	tables  *hdc.Tables
}

func defaultOptions() modelOptions {
	return modelOptions{
		dims:    10000,
		ngram:   3,
		symbols: 10,
		k:       1,
		workers: DefaultWorkers(),
	}
}

// DefaultWorkers is the logical core count, or GOMAXPROCS when the CPU
// cannot be identified.
func DefaultWorkers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// WithDims sets the hypervector dimension (default 10000).
func WithDims(n int) Option { return func(o *modelOptions) { o.dims = n } }

// WithNGramSize sets the n-gram window width (default 3).
// Every sequence must hold at least this many symbols.
func WithNGramSize(n int) Option { return func(o *modelOptions) { o.ngram = n } }

// WithSymbols sets the size of the symbol alphabet (default 10): sequences
// may hold values in [0, n).
func WithSymbols(n int) Option { return func(o *modelOptions) { o.symbols = n } }

// WithK sets the number of neighbors consulted per prediction (default 1).
// A k above the training set size uses every training sequence.
func WithK(k int) Option { return func(o *modelOptions) { o.k = k } }

// WithSeed seeds the random hypervector tables (default 0).
// Models with the same seed and shape encode identically.
func WithSeed(s int64) Option { return func(o *modelOptions) { o.seed = s } }

// WithWorkers bounds the parallelism of batch encoding and classification.
func WithWorkers(n int) Option { return func(o *modelOptions) { o.workers = n } }

// WithLogger sets the structured logger (default discards).
func WithLogger(l *slog.Logger) Option { return func(o *modelOptions) { o.logger = l } }

// WithTables uses pre-generated tables instead of drawing them from the seed.
// WithDims, WithNGramSize and WithSymbols are then taken from the tables.
func WithTables(t hdc.Tables) Option { return func(o *modelOptions) { o.tables = &t } }

// New creates an untrained Model with the given options.
func New(opts ...Option) (*Model, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.workers <= 0 {
		o.workers = 1
	}

	var tables hdc.Tables
	if o.tables != nil {
		tables = *o.tables
	} else {
		var err error
		tables, err = hdc.NewTables(hdc.NewGenerator(o.seed), o.symbols, o.ngram, o.dims)
		if err != nil {
			return nil, fmt.Errorf("hdseq: generate tables: %w", err)
		}
	}
	enc, err := hdc.NewSequenceEncoder(tables)
	if err != nil {
		return nil, fmt.Errorf("hdseq: build encoder: %w", err)
	}
	clf, err := knn.NewClassifier(knn.Options{K: o.k, Workers: o.workers})
	if err != nil {
		return nil, fmt.Errorf("hdseq: %w", err)
	}

	o.logger.Debug("model created",
		"dims", enc.Dims(), "ngram", enc.NGramSize(), "symbols", enc.Symbols(),
		"k", o.k, "workers", o.workers)
	return &Model{
		enc:     enc,
		clf:     clf,
		workers: o.workers,
		log:     o.logger,
		tracer:  otel.Tracer("github.com/Amansingh-afk/hdseq"),
	}, nil
}

// Encode returns the hypervector of a single sequence.
func (m *Model) Encode(seq []int) (hdc.Vector, error) { return m.enc.Encode(seq) }

// EncodeAll encodes every sequence in parallel, preserving order.
func (m *Model) EncodeAll(ctx context.Context, seqs [][]int) ([]hdc.Vector, error) {
	out := make([]hdc.Vector, len(seqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, s := range seqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := m.enc.Encode(s)
			if err != nil {
				return fmt.Errorf("sequence %d: %w", i, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Train encodes seqs and appends them, with their labels, to the training set.
// Training may be called repeatedly; examples keep their insertion order.
func (m *Model) Train(ctx context.Context, seqs [][]int, labels []int) (err error) {
	ctx, span := m.tracer.Start(ctx, "hdseq.Train", trace.WithAttributes(
		attribute.Int("sequences", len(seqs))))
	defer func() { endSpan(span, err) }()

	if len(seqs) != len(labels) {
		return fmt.Errorf("hdseq: %w: %d sequences, %d labels", knn.ErrLabelMismatch, len(seqs), len(labels))
	}
	vecs, err := m.EncodeAll(ctx, seqs)
	if err != nil {
		return fmt.Errorf("hdseq: encode training set: %w", err)
	}
	examples := make([]knn.Example, len(vecs))
	for i, v := range vecs {
		examples[i] = knn.Example{Vector: v, Label: labels[i]}
	}
	if err := m.clf.Add(examples...); err != nil {
		return fmt.Errorf("hdseq: %w", err)
	}
	m.log.Info("trained", "added", len(examples), "examples", m.clf.Len())
	return nil
}

// Predict returns the predicted label of seq.
func (m *Model) Predict(seq []int) (int, error) {
	v, err := m.enc.Encode(seq)
	if err != nil {
		return 0, fmt.Errorf("hdseq: %w", err)
	}
	label, err := m.clf.Classify(v)
	if err != nil {
		return 0, fmt.Errorf("hdseq: %w", err)
	}
	return label, nil
}

// PredictAll returns a predicted label for every sequence, in order.
func (m *Model) PredictAll(ctx context.Context, seqs [][]int) ([]int, error) {
	vecs, err := m.EncodeAll(ctx, seqs)
	if err != nil {
		return nil, fmt.Errorf("hdseq: %w", err)
	}
	labels, err := m.clf.ClassifyAll(vecs)
	if err != nil {
		return nil, fmt.Errorf("hdseq: %w", err)
	}
	return labels, nil
}

// Evaluate predicts every sequence and scores the predictions against labels.
func (m *Model) Evaluate(ctx context.Context, seqs [][]int, labels []int) (rep Report, err error) {
	ctx, span := m.tracer.Start(ctx, "hdseq.Evaluate", trace.WithAttributes(
		attribute.Int("sequences", len(seqs))))
	defer func() { endSpan(span, err) }()

	if len(seqs) != len(labels) {
		return Report{}, fmt.Errorf("hdseq: %w: %d sequences, %d labels", knn.ErrLabelMismatch, len(seqs), len(labels))
	}
	preds, err := m.PredictAll(ctx, seqs)
	if err != nil {
		return Report{}, err
	}
	acc, err := knn.Accuracy(preds, labels)
	if err != nil {
		return Report{}, fmt.Errorf("hdseq: %w", err)
	}
	span.SetAttributes(attribute.Float64("accuracy", acc))
	m.log.Info("evaluated", "sequences", len(seqs), "accuracy", acc)
	return Report{Predictions: preds, Accuracy: acc}, nil
}

// Len returns the number of training examples.
func (m *Model) Len() int { return m.clf.Len() }

// Reset drops the training set; the hypervector tables are kept.
func (m *Model) Reset() { m.clf.Reset() }

// Stats returns a point-in-time snapshot of Model metrics.
func (m *Model) Stats() Stats {
	s := m.clf.Stats()
	return Stats{
		Dims:        m.enc.Dims(),
		NGramSize:   m.enc.NGramSize(),
		Symbols:     m.enc.Symbols(),
		K:           m.clf.K(),
		Examples:    s.Examples,
		Queries:     s.Queries,
		Failures:    s.Failures,
		Predictions: s.Predictions,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
