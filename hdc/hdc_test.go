package hdc_test

import (
	"testing"

	"github.com/Amansingh-afk/hdseq/hdc"
)

const (
	dims     = 10000
	dimSmall = 130 // not a multiple of 64, exercises padding
)

// ── Vector construction ───────────────────────────────────────────────────────

func TestNew_ZeroVector(t *testing.T) {
	v := hdc.New(dims)
	if v.Dims() != dims {
		t.Fatalf("want dims %d, got %d", dims, v.Dims())
	}
	if v.OnesCount() != 0 {
		t.Fatal("New should return a zero vector")
	}
}

func TestNew_InvalidDims_Panics(t *testing.T) {
	assertPanics(t, "New(0)", func() { hdc.New(0) })
	assertPanics(t, "New(-1)", func() { hdc.New(-1) })
}

func TestFromWords_PaddingZeroed(t *testing.T) {
	// dims=65 → 2 words; the second word has only bit 0 meaningful.
	v := hdc.FromWords(65, []uint64{^uint64(0), ^uint64(0)})
	if v.OnesCount() != 65 {
		t.Fatalf("padding bits must be cleared, got %d set bits", v.OnesCount())
	}
}

func TestFromWords_LengthMismatch_Panics(t *testing.T) {
	assertPanics(t, "FromWords", func() { hdc.FromWords(128, []uint64{0}) })
}

func TestFromBools_Bit(t *testing.T) {
	bits := []bool{true, false, false, true, true}
	v := hdc.FromBools(bits)
	for i, b := range bits {
		if v.Bit(i) != b {
			t.Fatalf("component %d: want %v, got %v", i, b, v.Bit(i))
		}
	}
}

// ── Clone ─────────────────────────────────────────────────────────────────────

func TestClone_Independent(t *testing.T) {
	a := hdc.Random(dims, 42)
	b := a.Clone()
	if !hdc.Equal(a, b) {
		t.Fatal("Clone must be identical to original")
	}
	words := b.Words()
	words[0] ^= 1
	if !hdc.Equal(a, b) {
		t.Fatal("Words must return a copy")
	}
}

// ── Permute ───────────────────────────────────────────────────────────────────

func TestPermute_ZeroIsIdentity(t *testing.T) {
	v := hdc.Random(dims, 7)
	if !hdc.Equal(v, v.Permute(0)) {
		t.Fatal("Permute(0) must be the identity")
	}
	if !hdc.Equal(v, v.Permute(dims)) {
		t.Fatal("Permute(dims) must be the identity")
	}
}

func TestPermute_MovesComponentForward(t *testing.T) {
	bits := make([]bool, dimSmall)
	bits[0] = true
	bits[dimSmall-1] = true
	v := hdc.FromBools(bits).Permute(3)
	if !v.Bit(3) {
		t.Fatal("component 0 must move to index 3")
	}
	if !v.Bit(2) {
		t.Fatal("last component must wrap to index 2")
	}
	if v.OnesCount() != 2 {
		t.Fatalf("Permute must preserve popcount, got %d", v.OnesCount())
	}
}

func TestPermute_InverseRestores(t *testing.T) {
	for _, d := range []int{1, 63, 64, 65, dimSmall, dims} {
		v := hdc.Random(d, int64(d))
		for _, s := range []int{1, 5, 63, 64, 65, d - 1} {
			if s <= 0 {
				continue
			}
			back := v.Permute(s).Permute(d - s)
			if !hdc.Equal(v, back) {
				t.Fatalf("dims=%d shift=%d: Permute(s) then Permute(D-s) must restore", d, s)
			}
		}
	}
}

func TestPermute_NegativeShift(t *testing.T) {
	v := hdc.Random(dimSmall, 3)
	if !hdc.Equal(v.Permute(-5), v.Permute(dimSmall-5)) {
		t.Fatal("Permute(-s) must equal Permute(D-s)")
	}
}

func TestPermute_MatchesReference(t *testing.T) {
	v := hdc.Random(dimSmall, 11)
	for s := 0; s < dimSmall; s++ {
		p := v.Permute(s)
		for i := 0; i < dimSmall; i++ {
			if p.Bit((i+s)%dimSmall) != v.Bit(i) {
				t.Fatalf("shift %d: component %d misplaced", s, i)
			}
		}
	}
}

func TestPermute_QuasiOrthogonal(t *testing.T) {
	v := hdc.Random(dims, 1)
	assertNearHalf(t, "Permute(1)", hdc.Similarity(v, v.Permute(1)))
}

// ── Bind ──────────────────────────────────────────────────────────────────────

func TestBind_SelfIsZero(t *testing.T) {
	a := hdc.Random(dims, 1)
	if hdc.Bind(a, a).OnesCount() != 0 {
		t.Fatal("Bind(a, a) must be the zero vector")
	}
}

func TestBind_SelfInverse(t *testing.T) {
	a := hdc.Random(dims, 1)
	b := hdc.Random(dims, 2)
	if !hdc.Equal(a, hdc.Bind(hdc.Bind(a, b), b)) {
		t.Fatal("Bind(Bind(a,b),b) must equal a")
	}
}

func TestBind_QuasiOrthogonalToInputs(t *testing.T) {
	a := hdc.Random(dims, 1)
	b := hdc.Random(dims, 2)
	ab := hdc.Bind(a, b)
	assertNearHalf(t, "Bind vs a", hdc.Similarity(ab, a))
	assertNearHalf(t, "Bind vs b", hdc.Similarity(ab, b))
}

func TestBind_DimMismatch_Panics(t *testing.T) {
	assertPanics(t, "Bind", func() { hdc.Bind(hdc.New(64), hdc.New(128)) })
}

// ── Bundle ────────────────────────────────────────────────────────────────────

func TestBundle_SingleIsIdentity(t *testing.T) {
	v := hdc.Random(dims, 5)
	if !hdc.Equal(v, hdc.Bundle(v)) {
		t.Fatal("Bundle of one vector must return it unchanged")
	}
}

func TestBundle_AllOnes(t *testing.T) {
	ones := make([]bool, dimSmall)
	for i := range ones {
		ones[i] = true
	}
	v := hdc.FromBools(ones)
	if got := hdc.Bundle(v, v, v).OnesCount(); got != dimSmall {
		t.Fatalf("bundle of all-ones vectors must be all ones, got %d set", got)
	}
}

func TestBundle_TieResolvesToZero(t *testing.T) {
	a := hdc.Random(dimSmall, 1)
	b := hdc.Bind(a, hdc.FromWords(dimSmall, []uint64{^uint64(0), ^uint64(0), ^uint64(0)}))
	// a and its complement disagree everywhere: every component is a 1/1 tie.
	if got := hdc.Bundle(a, b).OnesCount(); got != 0 {
		t.Fatalf("exact 50/50 split must resolve to 0, got %d set", got)
	}
	// 2 vs 2 as well.
	if got := hdc.Bundle(a, b, a, b).OnesCount(); got != 0 {
		t.Fatalf("2/2 split must resolve to 0, got %d set", got)
	}
}

func TestBundle_Majority(t *testing.T) {
	a := hdc.FromBools([]bool{true, true, false, false})
	b := hdc.FromBools([]bool{true, false, true, false})
	c := hdc.FromBools([]bool{true, true, true, false})
	want := hdc.FromBools([]bool{true, true, true, false})
	if !hdc.Equal(want, hdc.Bundle(a, b, c)) {
		t.Fatal("Bundle must take the per-component majority")
	}
}

func TestBundle_SimilarToInputs(t *testing.T) {
	vecs := make([]hdc.Vector, 5)
	for i := range vecs {
		vecs[i] = hdc.Random(dims, int64(i+1))
	}
	bundle := hdc.Bundle(vecs...)
	for i, v := range vecs {
		if s := hdc.Similarity(bundle, v); s < 0.6 {
			t.Fatalf("bundle should stay similar to input %d, got %.4f", i, s)
		}
	}
}

func TestBundle_Empty_Panics(t *testing.T) {
	assertPanics(t, "Bundle()", func() { hdc.Bundle() })
}

// ── Hamming ───────────────────────────────────────────────────────────────────

func TestHamming_Symmetric(t *testing.T) {
	a := hdc.Random(dims, 1)
	b := hdc.Random(dims, 2)
	if hdc.Hamming(a, b) != hdc.Hamming(b, a) {
		t.Fatal("Hamming must be symmetric")
	}
}

func TestHamming_ZeroIffEqual(t *testing.T) {
	a := hdc.Random(dims, 1)
	if hdc.Hamming(a, a.Clone()) != 0 {
		t.Fatal("distance to an identical vector must be 0")
	}
	b := hdc.Bind(a, hdc.FromBools(append([]bool{true}, make([]bool, dims-1)...)))
	if hdc.Hamming(a, b) != 1 {
		t.Fatal("a single flipped component must give distance 1")
	}
}

func TestHamming_ComplementIsDims(t *testing.T) {
	ones := make([]bool, dimSmall)
	for i := range ones {
		ones[i] = true
	}
	a := hdc.Random(dimSmall, 9)
	comp := hdc.Bind(a, hdc.FromBools(ones))
	if got := hdc.Hamming(a, comp); got != dimSmall {
		t.Fatalf("complement distance: want %d, got %d", dimSmall, got)
	}
	if hdc.Similarity(a, comp) != 0.0 {
		t.Fatal("complement similarity must be 0")
	}
}

func TestHamming_DimMismatch_Panics(t *testing.T) {
	assertPanics(t, "Hamming", func() { hdc.Hamming(hdc.New(64), hdc.New(65)) })
}

// ── Benchmarks ────────────────────────────────────────────────────────────────

func BenchmarkHamming(b *testing.B) {
	x := hdc.Random(dims, 1)
	y := hdc.Random(dims, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hdc.Hamming(x, y)
	}
}

func BenchmarkBind(b *testing.B) {
	x := hdc.Random(dims, 1)
	y := hdc.Random(dims, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hdc.Bind(x, y)
	}
}

func BenchmarkBundle10(b *testing.B) {
	vecs := make([]hdc.Vector, 10)
	for i := range vecs {
		vecs[i] = hdc.Random(dims, int64(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hdc.Bundle(vecs...)
	}
}

func BenchmarkPermute(b *testing.B) {
	v := hdc.Random(dims, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v = v.Permute(1)
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func assertNearHalf(t *testing.T, label string, s float64) {
	t.Helper()
	if s < 0.45 || s > 0.55 {
		t.Fatalf("%s: expected similarity ~0.5 (quasi-orthogonal), got %.4f", label, s)
	}
}

func assertPanics(t *testing.T, label string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("%s: expected panic, got none", label)
		}
	}()
	fn()
}
