package streamconv

import "github.com/aeyoll/streamconv/window"

// FilterKernel is a ComplexBuffer of size FftSize bound to exactly one
// Convolution. It defaults to the identity delta function (real[0]=1,
// everything else zero) and carries both a back-reference to its owning
// Convolution and the Window used to taper it when built from a
// FrequencyResponse.
type FilterKernel[T Float] struct {
	*ComplexBuffer[T]
	core *convolutionBase[T]
	win  *window.Window[T]
}

// NewFilterKernel constructs a FilterKernel bound to conv, initialised to
// the identity delta function and the convolution's default window.
func NewFilterKernel[T Float](conv convolutionHandle[T]) *FilterKernel[T] {
	core := conv.core()
	fk := &FilterKernel[T]{
		ComplexBuffer: NewComplexBuffer[T](core.fftSize),
		core:          core,
		win:           core.defaultWindow,
	}
	fk.Real[0] = 1
	return fk
}

// SetWindow overrides the window used by a subsequent SetFrequencyResponse
// call. It must have size equal to the convolution's WindowSize.
func (fk *FilterKernel[T]) SetWindow(w *window.Window[T]) error {
	if w.Size() != fk.core.windowSize {
		return preconditionf("FilterKernel", "SetWindow", "window size %d must equal WindowSize %d", w.Size(), fk.core.windowSize)
	}
	fk.win = w
	return nil
}

// SetFrequencyResponse builds a properly windowed, causal, anti-aliased
// kernel from fr: inverse FFT, circular shift to centre the impulse
// response, window to fade its edges, then zero-pad the remainder so it is
// at most WindowSize = FftSize/2+1 samples long and overlap-add yields
// linear rather than circular convolution.
func (fk *FilterKernel[T]) SetFrequencyResponse(fr *FrequencyResponse[T]) error {
	if fr.core != fk.core {
		return precondition("FilterKernel", "SetFrequencyResponse", "frequency response belongs to a different Convolution")
	}
	core := fk.core

	if err := core.fft.Transform(fr.Real, fr.Imag, fk.Real, fk.Imag, true); err != nil {
		return err
	}

	fk.Shift(-core.fftSize / 4)

	if err := fk.win.ApplyBoth(fk.Real[:core.windowSize], fk.Imag[:core.windowSize]); err != nil {
		return err
	}

	fk.FillBoth(core.windowSize, core.fftSize, 0, 0)
	return nil
}
