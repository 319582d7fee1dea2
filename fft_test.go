package streamconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFourierTransformRejectsNonPowerOfTwo(t *testing.T) {
	_, err := NewFourierTransform[float64](6, ScalingNone)
	require.Error(t, err)
}

func TestTransformRejectsAliasing(t *testing.T) {
	fft, err := NewFourierTransform[float64](4, ScalingNone)
	require.NoError(t, err)
	buf := make([]float64, 4)
	other := make([]float64, 4)
	require.Error(t, fft.Transform(buf, other, buf, other, false))
}

func TestTransformOfImpulseIsFlatSpectrum(t *testing.T) {
	n := 8
	fft, err := NewFourierTransform[float64](n, ScalingNone)
	require.NoError(t, err)

	inRe := make([]float64, n)
	inIm := make([]float64, n)
	inRe[0] = 1
	outRe := make([]float64, n)
	outIm := make([]float64, n)

	require.NoError(t, fft.Transform(inRe, inIm, outRe, outIm, false))
	for i := 0; i < n; i++ {
		require.InDelta(t, 1, outRe[i], 1e-9)
		require.InDelta(t, 0, outIm[i], 1e-9)
	}
}

func TestTransformOfDCIsPeakAtBinZero(t *testing.T) {
	n := 8
	fft, err := NewFourierTransform[float64](n, ScalingNone)
	require.NoError(t, err)

	inRe := make([]float64, n)
	inIm := make([]float64, n)
	for i := range inRe {
		inRe[i] = 1
	}
	outRe := make([]float64, n)
	outIm := make([]float64, n)
	require.NoError(t, fft.Transform(inRe, inIm, outRe, outIm, false))

	require.InDelta(t, float64(n), outRe[0], 1e-9)
	for i := 1; i < n; i++ {
		require.InDelta(t, 0, outRe[i], 1e-9)
		require.InDelta(t, 0, outIm[i], 1e-9)
	}
}

func TestForwardThenInverseRoundTrips(t *testing.T) {
	n := 16
	fft, err := NewFourierTransform[float64](n, ScalingInverse)
	require.NoError(t, err)

	inRe := make([]float64, n)
	inIm := make([]float64, n)
	for i := range inRe {
		inRe[i] = math.Sin(float64(i))
		inIm[i] = math.Cos(float64(i) * 0.5)
	}

	specRe := make([]float64, n)
	specIm := make([]float64, n)
	require.NoError(t, fft.Transform(inRe, inIm, specRe, specIm, false))

	outRe := make([]float64, n)
	outIm := make([]float64, n)
	require.NoError(t, fft.Transform(specRe, specIm, outRe, outIm, true))

	for i := 0; i < n; i++ {
		require.InDelta(t, inRe[i], outRe[i], 1e-9)
		require.InDelta(t, inIm[i], outIm[i], 1e-9)
	}
}

func TestScalingBothIsSymmetricNorm(t *testing.T) {
	n := 8
	fft, err := NewFourierTransform[float64](n, ScalingBoth)
	require.NoError(t, err)

	inRe := make([]float64, n)
	inIm := make([]float64, n)
	inRe[0] = 1
	specRe := make([]float64, n)
	specIm := make([]float64, n)
	require.NoError(t, fft.Transform(inRe, inIm, specRe, specIm, false))
	for i := 0; i < n; i++ {
		require.InDelta(t, 1/math.Sqrt(float64(n)), specRe[i], 1e-9)
	}

	outRe := make([]float64, n)
	outIm := make([]float64, n)
	require.NoError(t, fft.Transform(specRe, specIm, outRe, outIm, true))
	require.InDelta(t, 1, outRe[0], 1e-9)
}

func TestTransformGenericFloat32(t *testing.T) {
	n := 8
	fft, err := NewFourierTransform[float32](n, ScalingInverse)
	require.NoError(t, err)

	inRe := make([]float32, n)
	inIm := make([]float32, n)
	inRe[1] = 1
	specRe := make([]float32, n)
	specIm := make([]float32, n)
	require.NoError(t, fft.Transform(inRe, inIm, specRe, specIm, false))

	outRe := make([]float32, n)
	outIm := make([]float32, n)
	require.NoError(t, fft.Transform(specRe, specIm, outRe, outIm, true))
	for i := 0; i < n; i++ {
		require.InDelta(t, float64(inRe[i]), float64(outRe[i]), 1e-4)
	}
}
