package hdc

import (
	"fmt"
	"math/rand"
)

// Generator produces random hypervectors from an owned random source.
// Two Generators built from the same seed produce the same vectors in the
// same order. A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec
}

// Generate returns count vectors of the given dimension with every component
// drawn independently and uniformly from {0, 1}.
// A non-positive count or dims is rejected with ErrInvalidDimension.
func (g *Generator) Generate(count, dims int) ([]Vector, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count %d", ErrInvalidDimension, count)
	}
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dims %d", ErrInvalidDimension, dims)
	}
	out := make([]Vector, count)
	for i := range out {
		out[i] = g.vector(dims)
	}
	return out, nil
}

func (g *Generator) vector(dims int) Vector {
	v := New(dims)
	for i := range v.data {
		v.data[i] = g.rng.Uint64()
	}
	zeroPadding(v.data, dims)
	return v
}

// Random generates a deterministic pseudorandom Vector for the given seed.
// The same (dims, seed) pair always produces the same vector.
// Vectors from different seeds are quasi-orthogonal with overwhelming probability.
func Random(dims int, seed int64) Vector {
	return NewGenerator(seed).vector(dims)
}

// Tables holds the fixed atomic vectors an encoder is built from:
// one value vector per symbol and one position vector per n-gram offset.
// Tables are read-only once generated and may be shared across goroutines.
type Tables struct {
	Values    []Vector
	Positions []Vector
}

// NewTables draws symbols value vectors followed by n position vectors from gen.
func NewTables(gen *Generator, symbols, n, dims int) (Tables, error) {
	if n < 1 {
		return Tables{}, fmt.Errorf("%w: n=%d", ErrInvalidNGram, n)
	}
	values, err := gen.Generate(symbols, dims)
	if err != nil {
		return Tables{}, fmt.Errorf("value vectors: %w", err)
	}
	positions, err := gen.Generate(n, dims)
	if err != nil {
		return Tables{}, fmt.Errorf("position vectors: %w", err)
	}
	return Tables{Values: values, Positions: positions}, nil
}

// Dims returns the shared dimension of the tables, or 0 if they are empty.
func (t Tables) Dims() int {
	if len(t.Values) == 0 {
		return 0
	}
	return t.Values[0].dims
}

// NGramSize returns the number of position vectors.
func (t Tables) NGramSize() int { return len(t.Positions) }

// validate checks the table invariants an encoder relies on.
func (t Tables) validate() error {
	if len(t.Values) == 0 {
		return fmt.Errorf("%w: empty value table", ErrInvalidDimension)
	}
	if len(t.Positions) == 0 {
		return fmt.Errorf("%w: empty position table", ErrInvalidNGram)
	}
	dims := t.Values[0].dims
	if dims <= 0 {
		return fmt.Errorf("%w: zero-value vector in table", ErrInvalidDimension)
	}
	for i, v := range t.Values {
		if v.dims != dims {
			return fmt.Errorf("%w: value vector %d has %d dims, want %d", ErrDimensionMismatch, i, v.dims, dims)
		}
	}
	for j, v := range t.Positions {
		if v.dims != dims {
			return fmt.Errorf("%w: position vector %d has %d dims, want %d", ErrDimensionMismatch, j, v.dims, dims)
		}
	}
	return nil
}
