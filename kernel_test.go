package streamconv

import (
	"testing"

	"github.com/aeyoll/streamconv/window"
	"github.com/stretchr/testify/require"
)

func TestNewFilterKernelIsIdentityDelta(t *testing.T) {
	conv, err := NewConvolutionComplex[float64](8)
	require.NoError(t, err)
	kernel := NewFilterKernel[float64](conv)
	require.Equal(t, float64(1), kernel.Real[0])
	for i := 1; i < kernel.Size(); i++ {
		require.Equal(t, float64(0), kernel.Real[i])
		require.Equal(t, float64(0), kernel.Imag[i])
	}
}

func TestFilterKernelSetWindowRejectsWrongSize(t *testing.T) {
	conv, err := NewConvolutionComplex[float64](8)
	require.NoError(t, err)
	kernel := NewFilterKernel[float64](conv)
	wrong := window.New[float64](3, window.Hann)
	require.Error(t, kernel.SetWindow(wrong))
}

func TestFilterKernelSetWindowAcceptsMatchingSize(t *testing.T) {
	conv, err := NewConvolutionComplex[float64](8)
	require.NoError(t, err)
	kernel := NewFilterKernel[float64](conv)
	ok := window.New[float64](conv.GetWindowSize(), window.Hann)
	require.NoError(t, kernel.SetWindow(ok))
}

func TestFilterKernelSetFrequencyResponseRejectsForeignResponse(t *testing.T) {
	a, err := NewConvolutionComplex[float64](8)
	require.NoError(t, err)
	b, err := NewConvolutionComplex[float64](8)
	require.NoError(t, err)

	kernel := NewFilterKernel[float64](a)
	fr := NewFrequencyResponse[float64](b)
	require.Error(t, kernel.SetFrequencyResponse(fr))
}

func TestFilterKernelSetFrequencyResponseZeroPadsTail(t *testing.T) {
	conv, err := NewConvolutionComplex[float64](8)
	require.NoError(t, err)
	kernel := NewFilterKernel[float64](conv)
	fr := NewFrequencyResponse[float64](conv)
	require.NoError(t, kernel.SetFrequencyResponse(fr))

	ws := conv.GetWindowSize()
	for i := ws; i < kernel.Size(); i++ {
		require.Equal(t, float64(0), kernel.Real[i], "index %d should be zero-padded", i)
		require.Equal(t, float64(0), kernel.Imag[i], "index %d should be zero-padded", i)
	}
}

func TestFilterKernelSetFrequencyResponseUsesActiveWindow(t *testing.T) {
	conv, err := NewConvolutionComplex[float64](8)
	require.NoError(t, err)
	kernel := NewFilterKernel[float64](conv)

	// A rectangular window leaves the windowed samples untouched, unlike
	// the default Blackman taper which attenuates everything but the
	// center.
	rect := window.New[float64](conv.GetWindowSize(), func(i, size int) float64 { return 1 })
	require.NoError(t, kernel.SetWindow(rect))

	fr := NewFrequencyResponse[float64](conv)
	fr.FillAll(1, 0)
	require.NoError(t, kernel.SetFrequencyResponse(fr))

	// Flat-unity response inverse-transforms to a delta at bin 0, which
	// the -fftSize/4 shift moves to fftSize/4; the rectangular window
	// passes it through unattenuated.
	shiftedIndex := conv.GetFftSize() / 4
	require.InDelta(t, 1, kernel.Real[shiftedIndex], 1e-9)
}
