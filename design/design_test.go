package design_test

import (
	"testing"

	"github.com/aeyoll/streamconv"
	"github.com/aeyoll/streamconv/design"
	"github.com/stretchr/testify/require"
)

// newFixture builds a small real convolution engine together with a fresh
// identity FrequencyResponse and FilterKernel bound to it.
func newFixture(t *testing.T) (*streamconv.ConvolutionReal[float64], *streamconv.FrequencyResponse[float64], *streamconv.FilterKernel[float64]) {
	t.Helper()
	conv, err := streamconv.NewConvolutionReal[float64](32) // nComplex=16, fftSize=32
	require.NoError(t, err)
	fr := streamconv.NewFrequencyResponse[float64](conv)
	kernel := conv.NewFilterKernel()
	return conv, fr, kernel
}

// nonDelta reports whether more than one sample of a kernel's real channel
// is non-negligible, the signature of a windowed-sinc impulse response
// rather than an untouched identity delta.
func nonDelta(real []float64) bool {
	count := 0
	for _, v := range real {
		if v > 1e-6 || v < -1e-6 {
			count++
		}
	}
	return count > 1
}

func TestMakeLowPassPaintsPassAndStopBands(t *testing.T) {
	_, fr, kernel := newFixture(t)

	require.NoError(t, design.MakeLowPass(fr, kernel, 0.25))

	require.InDelta(t, 1, fr.Real[2], 1e-9, "bin well inside the passband must read unity gain")
	require.InDelta(t, 0, fr.Real[12], 1e-9, "bin well inside the stopband must read zero gain")
	require.True(t, nonDelta(kernel.Real), "kernel must be a real windowed-sinc impulse, not the untouched identity delta")
}

func TestMakeHighPassPaintsPassAndStopBands(t *testing.T) {
	_, fr, kernel := newFixture(t)

	require.NoError(t, design.MakeHighPass(fr, kernel, 0.25))

	require.InDelta(t, 0, fr.Real[2], 1e-9, "bin well inside the stopband must read zero gain")
	require.InDelta(t, 1, fr.Real[12], 1e-9, "bin well inside the passband must read unity gain")
	require.True(t, nonDelta(kernel.Real))
}

func TestMakeBandPassPaintsThreeRegions(t *testing.T) {
	_, fr, kernel := newFixture(t)

	require.NoError(t, design.MakeBandPass(fr, kernel, 0.2, 0.35))

	require.InDelta(t, 0, fr.Real[2], 1e-9, "below the band must be zero gain")
	require.InDelta(t, 1, fr.Real[9], 1e-9, "inside the band must be unity gain")
	require.InDelta(t, 0, fr.Real[15], 1e-9, "above the band must be zero gain")
	require.True(t, nonDelta(kernel.Real))
}

func TestMakeBandRejectPaintsThreeRegions(t *testing.T) {
	_, fr, kernel := newFixture(t)

	require.NoError(t, design.MakeBandReject(fr, kernel, 0.2, 0.35))

	require.InDelta(t, 1, fr.Real[2], 1e-9, "below the band must be unity gain")
	require.InDelta(t, 0, fr.Real[9], 1e-9, "inside the band must be zero gain")
	require.InDelta(t, 1, fr.Real[15], 1e-9, "above the band must be unity gain")
	require.True(t, nonDelta(kernel.Real))
}

func TestMakeLowPassRejectsForeignKernel(t *testing.T) {
	_, fr, _ := newFixture(t)
	_, _, otherKernel := newFixture(t)

	require.Error(t, design.MakeLowPass(fr, otherKernel, 0.25))
}

func TestMakeLowPassFloat32(t *testing.T) {
	conv, err := streamconv.NewConvolutionReal[float32](32)
	require.NoError(t, err)
	fr := streamconv.NewFrequencyResponse[float32](conv)
	kernel := conv.NewFilterKernel()

	require.NoError(t, design.MakeLowPass(fr, kernel, 0.25))
	require.True(t, nonDelta(toFloat64(kernel.Real)))
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
