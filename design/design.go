// Package design builds frequency-response filter shapes and hands them to
// a FilterKernel the way the engine expects: paint the desired pass/stop
// bands onto a FrequencyResponse, then let FilterKernel.SetFrequencyResponse
// derive the windowed, anti-aliased impulse response from it.
package design

import "github.com/aeyoll/streamconv"

// MakeLowPass paints fr as an ideal low-pass response — unity gain on
// [0, cutoff], zero above it — and builds kernel from it. cutoff is a
// fraction of the sample rate in (0, 0.5].
func MakeLowPass[T streamconv.Float](fr *streamconv.FrequencyResponse[T], kernel *streamconv.FilterKernel[T], cutoff float64) error {
	if err := fr.FillRealBand(0, cutoff, 1); err != nil {
		return err
	}
	if cutoff < 0.5 {
		if err := fr.FillRealBand(cutoff, 0.5, 0); err != nil {
			return err
		}
	}
	return kernel.SetFrequencyResponse(fr)
}

// MakeHighPass paints fr as an ideal high-pass response — zero below
// cutoff, unity gain above it — and builds kernel from it.
func MakeHighPass[T streamconv.Float](fr *streamconv.FrequencyResponse[T], kernel *streamconv.FilterKernel[T], cutoff float64) error {
	if cutoff > 0 {
		if err := fr.FillRealBand(0, cutoff, 0); err != nil {
			return err
		}
	}
	if err := fr.FillRealBand(cutoff, 0.5, 1); err != nil {
		return err
	}
	return kernel.SetFrequencyResponse(fr)
}

// MakeBandPass paints fr as an ideal band-pass response — unity gain on
// [stop1, stop2], zero outside it — and builds kernel from it.
func MakeBandPass[T streamconv.Float](fr *streamconv.FrequencyResponse[T], kernel *streamconv.FilterKernel[T], stop1, stop2 float64) error {
	if stop1 > 0 {
		if err := fr.FillRealBand(0, stop1, 0); err != nil {
			return err
		}
	}
	if err := fr.FillRealBand(stop1, stop2, 1); err != nil {
		return err
	}
	if stop2 < 0.5 {
		if err := fr.FillRealBand(stop2, 0.5, 0); err != nil {
			return err
		}
	}
	return kernel.SetFrequencyResponse(fr)
}

// MakeBandReject paints fr as an ideal band-reject response — zero gain on
// [stop1, stop2], unity outside it — and builds kernel from it.
func MakeBandReject[T streamconv.Float](fr *streamconv.FrequencyResponse[T], kernel *streamconv.FilterKernel[T], stop1, stop2 float64) error {
	if stop1 > 0 {
		if err := fr.FillRealBand(0, stop1, 1); err != nil {
			return err
		}
	}
	if err := fr.FillRealBand(stop1, stop2, 0); err != nil {
		return err
	}
	if stop2 < 0.5 {
		if err := fr.FillRealBand(stop2, 0.5, 1); err != nil {
			return err
		}
	}
	return kernel.SetFrequencyResponse(fr)
}
