package streamconv

// FrequencyResponse is a ComplexBuffer of size FftSize bound to exactly
// one Convolution. It defaults to the identity response (real=1, imag=0
// at every bin) and carries a back-reference to its owning Convolution so
// operations can reject being handed a response built for a different
// instance.
type FrequencyResponse[T Float] struct {
	*ComplexBuffer[T]
	core *convolutionBase[T]
}

// NewFrequencyResponse constructs a FrequencyResponse bound to conv,
// initialised to the identity response.
func NewFrequencyResponse[T Float](conv convolutionHandle[T]) *FrequencyResponse[T] {
	core := conv.core()
	fr := &FrequencyResponse[T]{
		ComplexBuffer: NewComplexBuffer[T](core.fftSize),
		core:          core,
	}
	fr.FillAll(1, 0)
	return fr
}

// SetFilterKernel recomputes fr as the forward FFT of kernel. It rejects
// kernels built for a different Convolution.
func (fr *FrequencyResponse[T]) SetFilterKernel(kernel *FilterKernel[T]) error {
	if kernel.core != fr.core {
		return precondition("FrequencyResponse", "SetFilterKernel", "kernel belongs to a different Convolution")
	}
	return fr.core.fft.Transform(kernel.Real, kernel.Imag, fr.Real, fr.Imag, false)
}
