// Package hdc implements binary hyperdimensional computing primitives and an
// n-gram sequence encoder.
// Vectors are bitpacked []uint64 slices; all similarity operations are bitwise.
package hdc

import "math/bits"

// Vector is an immutable bitpacked hypervector.
// Padding bits in the final word are always zero.
type Vector struct {
	dims int
	data []uint64
}

// New returns a zero-valued Vector of the given dimension.
func New(dims int) Vector {
	if dims <= 0 {
		panic("hdc: dims must be positive")
	}
	return Vector{dims: dims, data: make([]uint64, numWords(dims))}
}

// FromWords constructs a Vector from a raw word slice.
// len(data) must equal ceil(dims/64). Padding bits are zeroed automatically.
func FromWords(dims int, data []uint64) Vector {
	if dims <= 0 {
		panic("hdc: dims must be positive")
	}
	needed := numWords(dims)
	if len(data) != needed {
		panic("hdc: data length does not match dims")
	}
	copied := make([]uint64, needed)
	copy(copied, data)
	zeroPadding(copied, dims)
	return Vector{dims: dims, data: copied}
}

// FromBools builds a Vector with component i set iff comps[i] is true.
func FromBools(comps []bool) Vector {
	v := New(len(comps))
	for i, b := range comps {
		if b {
			v.data[i/64] |= 1 << uint(i%64)
		}
	}
	return v
}

func (v Vector) Dims() int { return v.dims }

// Bit reports whether component i is set.
func (v Vector) Bit(i int) bool {
	if i < 0 || i >= v.dims {
		panic("hdc: component index out of range")
	}
	return v.data[i/64]>>uint(i%64)&1 == 1
}

// Words returns a copy of the underlying words.
func (v Vector) Words() []uint64 {
	out := make([]uint64, len(v.data))
	copy(out, v.data)
	return out
}

// OnesCount returns the number of set components.
func (v Vector) OnesCount() int {
	var n int
	for _, w := range v.data {
		n += bits.OnesCount64(w)
	}
	return n
}

// Equal reports whether a and b have the same dimension and components.
func Equal(a, b Vector) bool {
	if a.dims != b.dims {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	data := make([]uint64, len(v.data))
	copy(data, v.data)
	return Vector{dims: v.dims, data: data}
}

// Permute performs a cyclic shift: the component at index p moves to
// (p + shift) mod dims. Negative shifts rotate the other way.
// Permute(s) followed by Permute(dims-s) returns the original vector.
// Used for positional encoding inside an n-gram.
func (v Vector) Permute(shift int) Vector {
	s := shift % v.dims
	if s < 0 {
		s += v.dims
	}
	if s == 0 {
		return v.Clone()
	}
	result := New(v.dims)
	// [0, dims-s) -> [s, dims), then the wrapped tail [dims-s, dims) -> [0, s).
	copyBits(result.data, s, v.data, 0, v.dims-s)
	copyBits(result.data, 0, v.data, v.dims-s, s)
	return result
}

// Bundle returns the majority-vote superposition of the given vectors.
// All vectors must have the same dimension.
// A component is set iff strictly more than half of the inputs set it, so
// with an even count ties resolve to 0.
func Bundle(vecs ...Vector) Vector {
	if len(vecs) == 0 {
		panic("hdc: Bundle requires at least one vector")
	}
	requireSameDims(vecs...)

	dims := vecs[0].dims
	counts := make([]int32, dims)
	for _, v := range vecs {
		accumulate(counts, v.data)
	}
	result := New(dims)
	majority(result.data, counts, len(vecs))
	return result
}

// Bind associates two vectors via XOR. The operation is its own inverse:
// Bind(Bind(a, b), b) == a.
func Bind(a, b Vector) Vector {
	requireSameDims(a, b)
	result := New(a.dims)
	for i := range result.data {
		result.data[i] = a.data[i] ^ b.data[i]
	}
	return result
}

// Hamming returns the number of components in which a and b differ.
func Hamming(a, b Vector) int {
	requireSameDims(a, b)
	var diff int
	for i := range a.data {
		diff += bits.OnesCount64(a.data[i] ^ b.data[i])
	}
	return diff
}

// Similarity returns the normalized Hamming similarity in [0.0, 1.0].
// 1.0 = identical, 0.0 = complement, ~0.5 = unrelated random vectors.
func Similarity(a, b Vector) float64 {
	return 1.0 - float64(Hamming(a, b))/float64(a.dims)
}

// accumulate adds every set bit of words to its per-component counter.
func accumulate(counts []int32, words []uint64) {
	for w, word := range words {
		base := w * 64
		for word != 0 {
			b := bits.TrailingZeros64(word)
			counts[base+b]++
			word &= word - 1
		}
	}
}

// majority sets bit i of dst iff counts[i] > total/2. dst must be zeroed.
func majority(dst []uint64, counts []int32, total int) {
	threshold := int32(total / 2)
	for i, c := range counts {
		if c > threshold {
			dst[i/64] |= 1 << uint(i%64)
		}
	}
}

// copyBits ORs n bits of src starting at srcOff into dst starting at dstOff.
func copyBits(dst []uint64, dstOff int, src []uint64, srcOff, n int) {
	for n > 0 {
		c := n
		if c > 64 {
			c = 64
		}
		setBits(dst, dstOff, c, getBits(src, srcOff, c))
		dstOff += c
		srcOff += c
		n -= c
	}
}

// getBits reads n (1..64) bits starting at off.
func getBits(src []uint64, off, n int) uint64 {
	w, b := off/64, uint(off%64)
	x := src[w] >> b
	if b != 0 && w+1 < len(src) {
		x |= src[w+1] << (64 - b)
	}
	if n < 64 {
		x &= (uint64(1) << uint(n)) - 1
	}
	return x
}

// setBits ORs the low n bits of x into dst starting at off.
func setBits(dst []uint64, off, n int, x uint64) {
	w, b := off/64, uint(off%64)
	dst[w] |= x << b
	if int(b)+n > 64 {
		dst[w+1] |= x >> (64 - b)
	}
}

func numWords(dims int) int {
	return (dims + 63) / 64
}

func zeroPadding(data []uint64, dims int) {
	if rem := dims % 64; rem != 0 {
		data[len(data)-1] &= (uint64(1) << uint(rem)) - 1
	}
}

func requireSameDims(vecs ...Vector) {
	d := vecs[0].dims
	for _, v := range vecs[1:] {
		if v.dims != d {
			panic("hdc: dimension mismatch")
		}
	}
}
