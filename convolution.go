package streamconv

import "github.com/aeyoll/streamconv/window"

// convolutionBase holds everything a Convolution exclusively owns except
// its pending tail and block-shape-specific scratch buffers: the FFT
// engine, default window, active frequency response, and the pre/post
// spectrum scratch used by convolveFreqDomain. ConvolutionComplex and
// ConvolutionReal embed a *convolutionBase and differ only in how they
// pack input and unpack output around it; there is no virtual dispatch
// between them.
type convolutionBase[T Float] struct {
	fftSize    int
	windowSize int

	fft           *FourierTransform[T]
	defaultWindow *window.Window[T]

	freqResponse *ComplexBuffer[T]
	preSpectrum  *ComplexBuffer[T]
	postSpectrum *ComplexBuffer[T]

	observer Observer[T]
}

// convolutionHandle is implemented by ConvolutionComplex and
// ConvolutionReal so FrequencyResponse and FilterKernel can be
// constructed generically over either, and so their back-reference checks
// can compare the *convolutionBase pointer as the instance's identity.
type convolutionHandle[T Float] interface {
	core() *convolutionBase[T]
}

func newConvolutionBase[T Float](fftSize, windowSize int) (*convolutionBase[T], error) {
	fft, err := NewFourierTransform[T](fftSize, ScalingInverse)
	if err != nil {
		return nil, err
	}
	base := &convolutionBase[T]{
		fftSize:       fftSize,
		windowSize:    windowSize,
		fft:           fft,
		defaultWindow: window.New[T](windowSize, window.Blackman),
		freqResponse:  NewComplexBuffer[T](fftSize),
		preSpectrum:   NewComplexBuffer[T](fftSize),
		postSpectrum:  NewComplexBuffer[T](fftSize),
	}
	base.freqResponse.FillAll(1, 0)
	return base, nil
}

func sharedConvolutionBase[T Float](other *convolutionBase[T]) *convolutionBase[T] {
	base := &convolutionBase[T]{
		fftSize:       other.fftSize,
		windowSize:    other.windowSize,
		fft:           other.fft,
		defaultWindow: other.defaultWindow,
		freqResponse:  NewComplexBuffer[T](other.fftSize),
		preSpectrum:   NewComplexBuffer[T](other.fftSize),
		postSpectrum:  NewComplexBuffer[T](other.fftSize),
	}
	base.freqResponse.FillAll(1, 0)
	return base
}

// convolveFreqDomain runs the frequency-domain step shared by both
// variants: forward FFT, optional pre-observer, spectral multiply against
// the active frequency response, inverse FFT, optional post-observer.
func (b *convolutionBase[T]) convolveFreqDomain(inTime, outTime *ComplexBuffer[T]) error {
	if err := b.fft.Transform(inTime.Real, inTime.Imag, b.preSpectrum.Real, b.preSpectrum.Imag, false); err != nil {
		return err
	}
	if b.observer.OnPreConvolve != nil {
		b.observer.OnPreConvolve(inTime, b.preSpectrum)
	}
	if err := b.postSpectrum.Cross(b.preSpectrum, b.freqResponse); err != nil {
		return err
	}
	if err := b.fft.Transform(b.postSpectrum.Real, b.postSpectrum.Imag, outTime.Real, outTime.Imag, true); err != nil {
		return err
	}
	if b.observer.OnPostConvolve != nil {
		b.observer.OnPostConvolve(outTime, b.postSpectrum)
	}
	return nil
}

// ConvolutionComplex streams N complex samples per block, frequently used
// to carry two independent real channels in the real and imaginary
// channel simultaneously.
type ConvolutionComplex[T Float] struct {
	base *convolutionBase[T]
	size int

	preConvTime  *ComplexBuffer[T]
	postConvTime *ComplexBuffer[T]
	pending      *ComplexBuffer[T]
}

// NewConvolutionComplex constructs a ConvolutionComplex for blocks of n
// complex samples, with a fresh FFT engine and default window.
func NewConvolutionComplex[T Float](n int) (*ConvolutionComplex[T], error) {
	if n <= 0 {
		return nil, preconditionf("ConvolutionComplex", "New", "size must be positive, got %d", n)
	}
	base, err := newConvolutionBase[T](2*n, n+1)
	if err != nil {
		return nil, err
	}
	return &ConvolutionComplex[T]{
		base:         base,
		size:         n,
		preConvTime:  NewComplexBuffer[T](base.fftSize),
		postConvTime: NewComplexBuffer[T](base.fftSize),
		pending:      NewComplexBuffer[T](n),
	}, nil
}

// NewConvolutionComplexFrom constructs a ConvolutionComplex that shares
// other's FFT engine and default window, but owns fresh per-stream state
// (frequency response, scratch buffers, pending tail).
func NewConvolutionComplexFrom[T Float](other *ConvolutionComplex[T]) *ConvolutionComplex[T] {
	base := sharedConvolutionBase(other.base)
	return &ConvolutionComplex[T]{
		base:         base,
		size:         other.size,
		preConvTime:  NewComplexBuffer[T](base.fftSize),
		postConvTime: NewComplexBuffer[T](base.fftSize),
		pending:      NewComplexBuffer[T](other.size),
	}
}

func (c *ConvolutionComplex[T]) core() *convolutionBase[T] { return c.base }

// GetSize returns N, the number of complex samples per block.
func (c *ConvolutionComplex[T]) GetSize() int { return c.size }

// GetFftSize returns 2N.
func (c *ConvolutionComplex[T]) GetFftSize() int { return c.base.fftSize }

// GetWindowSize returns N+1.
func (c *ConvolutionComplex[T]) GetWindowSize() int { return c.base.windowSize }

// NewFilterKernel returns a fresh identity FilterKernel bound to c.
func (c *ConvolutionComplex[T]) NewFilterKernel() *FilterKernel[T] { return NewFilterKernel[T](c) }

// SetOnConvolveListener registers (or clears, with a zero Observer) the
// pre/post convolve callbacks.
func (c *ConvolutionComplex[T]) SetOnConvolveListener(o Observer[T]) { c.base.observer = o }

// SetFilterKernel installs kernel as the active filter: its imaginary
// channel is forced to zero (this variant convolves two interleaved real
// streams sharing one kernel, so a non-zero imaginary kernel would
// cross-couple them), then its forward FFT becomes the active frequency
// response.
func (c *ConvolutionComplex[T]) SetFilterKernel(kernel *FilterKernel[T]) error {
	if kernel.core != c.base {
		return precondition("ConvolutionComplex", "SetFilterKernel", "kernel belongs to a different Convolution")
	}
	kernel.FillImag(0, c.base.fftSize, 0)
	return c.base.fft.Transform(kernel.Real, kernel.Imag, c.base.freqResponse.Real, c.base.freqResponse.Imag, false)
}

// Convolve processes n complex input samples from (inRe, inIm) and writes
// n complex output samples to (outRe, outIm); all four must have length
// >= GetSize().
func (c *ConvolutionComplex[T]) Convolve(inRe, inIm, outRe, outIm []T) error {
	n := c.size
	if len(inRe) < n || len(inIm) < n || len(outRe) < n || len(outIm) < n {
		return preconditionf("ConvolutionComplex", "Convolve", "all arrays must have length >= %d", n)
	}

	copy(c.preConvTime.Real[:n], inRe[:n])
	copy(c.preConvTime.Imag[:n], inIm[:n])

	if err := c.base.convolveFreqDomain(c.preConvTime, c.postConvTime); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		outRe[i] = c.postConvTime.Real[i] + c.pending.Real[i]
		outIm[i] = c.postConvTime.Imag[i] + c.pending.Imag[i]
		c.pending.Real[i] = c.postConvTime.Real[i+n]
		c.pending.Imag[i] = c.postConvTime.Imag[i+n]
	}
	return nil
}

// Drain copies the pending overlap-add tail into out and zeroes it.
func (c *ConvolutionComplex[T]) Drain(outRe, outIm []T) error {
	n := c.size
	if len(outRe) < n || len(outIm) < n {
		return preconditionf("ConvolutionComplex", "Drain", "out arrays must have length >= %d", n)
	}
	copy(outRe[:n], c.pending.Real)
	copy(outIm[:n], c.pending.Imag)
	c.pending.FillAll(0, 0)
	return nil
}

// Flush discards the pending overlap-add tail without emitting it.
func (c *ConvolutionComplex[T]) Flush() { c.pending.FillAll(0, 0) }

// ConvolutionReal streams 2*N_complex real samples per block, exploiting
// the fact that one complex FFT of two packed real sequences yields both
// their spectra.
type ConvolutionReal[T Float] struct {
	base      *convolutionBase[T]
	nComplex  int // internal complex block size (GetSize()/2)
	pending   []T // length nComplex

	preConvTime  *ComplexBuffer[T]
	postConvTime *ComplexBuffer[T]
}

// NewConvolutionReal constructs a ConvolutionReal for blocks of size real
// samples, which must be a power of two of at least 2 (it is also the FFT
// size); the internal complex block size is size/2.
func NewConvolutionReal[T Float](size int) (*ConvolutionReal[T], error) {
	if size <= 0 || size%2 != 0 {
		return nil, preconditionf("ConvolutionReal", "New", "size must be a positive even number, got %d", size)
	}
	nComplex := size / 2
	base, err := newConvolutionBase[T](size, nComplex+1)
	if err != nil {
		return nil, err
	}
	return &ConvolutionReal[T]{
		base:         base,
		nComplex:     nComplex,
		pending:      make([]T, nComplex),
		preConvTime:  NewComplexBuffer[T](base.fftSize),
		postConvTime: NewComplexBuffer[T](base.fftSize),
	}, nil
}

// NewConvolutionRealFrom constructs a ConvolutionReal that shares other's
// FFT engine and default window, but owns fresh per-stream state.
func NewConvolutionRealFrom[T Float](other *ConvolutionReal[T]) *ConvolutionReal[T] {
	base := sharedConvolutionBase(other.base)
	return &ConvolutionReal[T]{
		base:         base,
		nComplex:     other.nComplex,
		pending:      make([]T, other.nComplex),
		preConvTime:  NewComplexBuffer[T](base.fftSize),
		postConvTime: NewComplexBuffer[T](base.fftSize),
	}
}

func (c *ConvolutionReal[T]) core() *convolutionBase[T] { return c.base }

// GetSize returns the user-facing block size, 2*N_complex.
func (c *ConvolutionReal[T]) GetSize() int { return 2 * c.nComplex }

// GetFftSize returns the FFT size, equal to GetSize().
func (c *ConvolutionReal[T]) GetFftSize() int { return c.base.fftSize }

// GetWindowSize returns N_complex+1.
func (c *ConvolutionReal[T]) GetWindowSize() int { return c.base.windowSize }

// NewFilterKernel returns a fresh identity FilterKernel bound to c.
func (c *ConvolutionReal[T]) NewFilterKernel() *FilterKernel[T] { return NewFilterKernel[T](c) }

// SetOnConvolveListener registers (or clears, with a zero Observer) the
// pre/post convolve callbacks.
func (c *ConvolutionReal[T]) SetOnConvolveListener(o Observer[T]) { c.base.observer = o }

// SetFilterKernel installs kernel as the active filter. The real variant's
// output packing assumes a real-only kernel (no cross-coupling between the
// two packed halves), so the imaginary channel is forced to zero here
// exactly as the complex variant does, just for the opposite reason: there
// the two halves are two real signals sharing one kernel, here there is
// only ever one real signal and a non-zero imaginary kernel would corrupt
// its packing.
func (c *ConvolutionReal[T]) SetFilterKernel(kernel *FilterKernel[T]) error {
	if kernel.core != c.base {
		return precondition("ConvolutionReal", "SetFilterKernel", "kernel belongs to a different Convolution")
	}
	kernel.FillImag(0, c.base.fftSize, 0)
	return c.base.fft.Transform(kernel.Real, kernel.Imag, c.base.freqResponse.Real, c.base.freqResponse.Imag, false)
}

// Convolve processes a block of GetSize() real samples from in and writes
// GetSize() real samples to out.
func (c *ConvolutionReal[T]) Convolve(in, out []T) error {
	size := 2 * c.nComplex
	if len(in) < size || len(out) < size {
		return preconditionf("ConvolutionReal", "Convolve", "in/out must have length >= %d", size)
	}
	n := c.nComplex

	copy(c.preConvTime.Real[:n], in[:n])
	copy(c.preConvTime.Imag[:n], in[n:size])

	if err := c.base.convolveFreqDomain(c.preConvTime, c.postConvTime); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		out[i] = c.postConvTime.Real[i] + c.pending[i]
		out[n+i] = c.postConvTime.Real[n+i] + c.postConvTime.Imag[i]
		c.pending[i] = c.postConvTime.Imag[n+i]
	}
	return nil
}

// Drain copies the pending overlap-add tail (half the user-facing block
// size) into out and zeroes it.
func (c *ConvolutionReal[T]) Drain(out []T) error {
	n := c.nComplex
	if len(out) < n {
		return preconditionf("ConvolutionReal", "Drain", "out must have length >= %d", n)
	}
	copy(out[:n], c.pending)
	for i := range c.pending {
		c.pending[i] = 0
	}
	return nil
}

// Flush discards the pending overlap-add tail without emitting it.
func (c *ConvolutionReal[T]) Flush() {
	for i := range c.pending {
		c.pending[i] = 0
	}
}
