package streamconv

import "math"

// Scaling selects which multiplicative factor a FourierTransform applies,
// and on which direction.
type Scaling int

const (
	// ScalingNone applies no scaling to either direction.
	ScalingNone Scaling = iota
	// ScalingForward applies 1/N to the forward transform only.
	ScalingForward
	// ScalingInverse applies 1/N to the inverse transform only.
	ScalingInverse
	// ScalingBoth applies 1/sqrt(N) to both directions.
	ScalingBoth
)

// FourierTransform is an immutable fixed-size complex-FFT engine
// implementing the radix-2 decimation-in-time Cooley-Tukey algorithm. N
// must be a power of two. The permutation, cos, and sin tables are
// precomputed at construction and never change.
type FourierTransform[T Float] struct {
	n       int
	bits    int
	scaling Scaling
	perm    []int
	twiddle twiddleTables[T]
}

// NewFourierTransform constructs a FourierTransform for size n, which must
// be a power of two.
func NewFourierTransform[T Float](n int, scaling Scaling) (*FourierTransform[T], error) {
	if !isPowerOfTwo(n) {
		return nil, preconditionf("FourierTransform", "New", "size %d is not a power of two", n)
	}
	bits := log2(n)
	return &FourierTransform[T]{
		n:       n,
		bits:    bits,
		scaling: scaling,
		perm:    bitReversalPermutation(n, bits),
		twiddle: buildTwiddleTables[T](n),
	}, nil
}

// Size returns N.
func (f *FourierTransform[T]) Size() int { return f.n }

// scaleFactor returns the multiplicative factor applied during the
// bit-reversed copy for the requested direction.
func (f *FourierTransform[T]) scaleFactor(inverse bool) T {
	switch f.scaling {
	case ScalingForward:
		if !inverse {
			return 1 / T(f.n)
		}
		return 1
	case ScalingInverse:
		if inverse {
			return 1 / T(f.n)
		}
		return 1
	case ScalingBoth:
		return T(1 / math.Sqrt(float64(f.n)))
	default:
		return 1
	}
}

// Transform computes the forward DFT (inverse=false) or the inverse DFT
// (inverse=true) of (inReal, inImag) into (outReal, outImag), all of
// length >= N. Input and output may not alias within the same channel.
func (f *FourierTransform[T]) Transform(inReal, inImag, outReal, outImag []T, inverse bool) error {
	n := f.n
	if len(inReal) < n || len(inImag) < n || len(outReal) < n || len(outImag) < n {
		return preconditionf("FourierTransform", "Transform", "all arrays must have length >= %d", n)
	}
	if sameSlice(inReal, outReal) {
		return precondition("FourierTransform", "Transform", "inReal and outReal must not alias")
	}
	if sameSlice(inImag, outImag) {
		return precondition("FourierTransform", "Transform", "inImag and outImag must not alias")
	}

	scale := f.scaleFactor(inverse)
	for i := 0; i < n; i++ {
		src := f.perm[i]
		outReal[i] = inReal[src] * scale
		outImag[i] = inImag[src] * scale
	}

	sign := T(1)
	if inverse {
		sign = -1
	}

	logN := f.bits
	for s := 0; s < logN; s++ {
		n1 := 1 << s
		n2 := n1 * 2
		twiddleStep := 1 << (logN - s - 1)

		for j := 0; j < n1; j++ {
			t := j * twiddleStep
			cos := f.twiddle.cos[t]
			sin := f.twiddle.sin[t] * sign

			for k := j; k < n; k += n2 {
				l := k + n1
				lr, li := outReal[l], outImag[l]
				tr := lr*cos - li*sin
				ti := lr*sin + li*cos

				outReal[l] = outReal[k] - tr
				outImag[l] = outImag[k] - ti
				outReal[k] = outReal[k] + tr
				outImag[k] = outImag[k] + ti
			}
		}
	}

	return nil
}

// sameSlice reports whether a and b share a backing array starting at the
// same address, the aliasing case Transform must reject.
func sameSlice[T Float](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return &a[0] == &b[0]
}
