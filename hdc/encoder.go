package hdc

import "fmt"

// Encoder converts a symbol sequence to a hypervector.
type Encoder interface {
	Encode(seq []int) (Vector, error)
}

// SequenceEncoder implements Encoder with position-bound n-grams:
//
//	gram(i) = XOR over j of  ρʲ(value[seq[i+j]]) XOR position[j]
//	result  = majority(gram(0), …, gram(len(seq)-n))
//
// Shifting a value by its offset inside the window makes "1 2 3" and
// "3 2 1" encode differently.
// It is safe for concurrent use.
type SequenceEncoder struct {
	dims    int
	n       int
	symbols int
	// bound[j][s] = Bind(Permute(values[s], j), positions[j]), so a window is
	// the XOR of n precomputed words.
	bound [][]Vector
	pool  *bufPool
}

// NewSequenceEncoder builds an encoder over t. The n-gram length is the
// number of position vectors.
func NewSequenceEncoder(t Tables) (*SequenceEncoder, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	n := len(t.Positions)
	bound := make([][]Vector, n)
	for j := range bound {
		bound[j] = make([]Vector, len(t.Values))
		for s, v := range t.Values {
			bound[j][s] = Bind(v.Permute(j), t.Positions[j])
		}
	}
	dims := t.Dims()
	return &SequenceEncoder{
		dims:    dims,
		n:       n,
		symbols: len(t.Values),
		bound:   bound,
		pool:    newBufPool(dims),
	}, nil
}

// Encode is the one-shot form of SequenceEncoder.Encode: it checks that
// positions holds exactly n vectors and encodes seq against the two tables.
func Encode(seq []int, values, positions []Vector, n int) (Vector, error) {
	if n < 1 {
		return Vector{}, fmt.Errorf("%w: n=%d", ErrInvalidNGram, n)
	}
	if len(positions) != n {
		return Vector{}, fmt.Errorf("%w: %d position vectors for n=%d", ErrInvalidNGram, len(positions), n)
	}
	enc, err := NewSequenceEncoder(Tables{Values: values, Positions: positions})
	if err != nil {
		return Vector{}, err
	}
	return enc.Encode(seq)
}

// Dims returns the dimension of the vectors the encoder produces.
func (e *SequenceEncoder) Dims() int { return e.dims }

// NGramSize returns the window width n.
func (e *SequenceEncoder) NGramSize() int { return e.n }

// Symbols returns the number of symbols with a value vector.
func (e *SequenceEncoder) Symbols() int { return e.symbols }

// Encode returns the bundled n-gram vector of seq.
// seq must hold at least n symbols, each in [0, Symbols()).
func (e *SequenceEncoder) Encode(seq []int) (Vector, error) {
	if len(seq) < e.n {
		return Vector{}, fmt.Errorf("%w: length %d, n=%d", ErrInvalidSequenceLength, len(seq), e.n)
	}
	for i, s := range seq {
		if s < 0 || s >= e.symbols {
			return Vector{}, fmt.Errorf("%w: %d at index %d (table holds %d symbols)", ErrUnknownSymbol, s, i, e.symbols)
		}
	}

	numGrams := len(seq) - e.n + 1
	gram := e.pool.getWords()
	defer e.pool.putWords(gram)

	if numGrams == 1 {
		e.window(gram, seq)
		return FromWords(e.dims, gram), nil
	}

	counts := e.pool.getCounts()
	defer e.pool.putCounts(counts)
	for i := 0; i < numGrams; i++ {
		e.window(gram, seq[i:i+e.n])
		accumulate(counts, gram)
	}
	result := New(e.dims)
	majority(result.data, counts, numGrams)
	return result, nil
}

// window overwrites dst with the n-gram vector of the len(win) == n symbols.
func (e *SequenceEncoder) window(dst []uint64, win []int) {
	copy(dst, e.bound[0][win[0]].data)
	for j := 1; j < len(win); j++ {
		src := e.bound[j][win[j]].data
		for w := range dst {
			dst[w] ^= src[w]
		}
	}
}
