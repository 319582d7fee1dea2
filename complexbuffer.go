package streamconv

import "math"

// ComplexBuffer is an immutable-size container of N complex samples stored
// as two parallel arrays of real values. The arrays are directly
// observable so external signal sources can write into them without going
// through an accessor. No operation ever reallocates Real or Imag; both
// always have the same length as each other.
type ComplexBuffer[T Float] struct {
	Real []T
	Imag []T
}

// NewComplexBuffer returns a zeroed buffer of the given size.
func NewComplexBuffer[T Float](size int) *ComplexBuffer[T] {
	if size <= 0 {
		panic(preconditionf("ComplexBuffer", "New", "size must be positive, got %d", size))
	}
	return &ComplexBuffer[T]{
		Real: make([]T, size),
		Imag: make([]T, size),
	}
}

// WrapComplexBuffer wraps caller-supplied real/imag arrays without
// copying. It rejects arrays of unequal length.
func WrapComplexBuffer[T Float](re, im []T) (*ComplexBuffer[T], error) {
	if len(re) != len(im) {
		return nil, preconditionf("ComplexBuffer", "Wrap", "real length %d != imag length %d", len(re), len(im))
	}
	return &ComplexBuffer[T]{Real: re, Imag: im}, nil
}

// CopyComplexBuffer returns a deep copy of other.
func CopyComplexBuffer[T Float](other *ComplexBuffer[T]) *ComplexBuffer[T] {
	b := NewComplexBuffer[T](other.Size())
	copy(b.Real, other.Real)
	copy(b.Imag, other.Imag)
	return b
}

// Size returns N, the number of complex samples in the buffer.
func (b *ComplexBuffer[T]) Size() int {
	return len(b.Real)
}

// Equal reports whether two buffers are elementwise equal over both
// arrays.
func (b *ComplexBuffer[T]) Equal(other *ComplexBuffer[T]) bool {
	if b.Size() != other.Size() {
		return false
	}
	for i := range b.Real {
		if b.Real[i] != other.Real[i] || b.Imag[i] != other.Imag[i] {
			return false
		}
	}
	return true
}

// Squared returns re[i]^2 + im[i]^2.
func (b *ComplexBuffer[T]) Squared(i int) T {
	re, im := b.Real[i], b.Imag[i]
	return re*re + im*im
}

// Magnitude returns sqrt(Squared(i)).
func (b *ComplexBuffer[T]) Magnitude(i int) T {
	return T(math.Sqrt(float64(b.Squared(i))))
}

// Phase returns atan2(im[i], re[i]).
func (b *ComplexBuffer[T]) Phase(i int) T {
	return T(math.Atan2(float64(b.Imag[i]), float64(b.Real[i])))
}

// FillReal sets real[i] = v for every i in [start, end).
func (b *ComplexBuffer[T]) FillReal(start, end int, v T) {
	for i := start; i < end; i++ {
		b.Real[i] = v
	}
}

// FillImag sets imag[i] = v for every i in [start, end).
func (b *ComplexBuffer[T]) FillImag(start, end int, v T) {
	for i := start; i < end; i++ {
		b.Imag[i] = v
	}
}

// FillBoth sets real[i] = re and imag[i] = im for every i in [start, end).
func (b *ComplexBuffer[T]) FillBoth(start, end int, re, im T) {
	for i := start; i < end; i++ {
		b.Real[i] = re
		b.Imag[i] = im
	}
}

// FillAllReal sets every real sample to v.
func (b *ComplexBuffer[T]) FillAllReal(v T) { b.FillReal(0, b.Size(), v) }

// FillAllImag sets every imaginary sample to v.
func (b *ComplexBuffer[T]) FillAllImag(v T) { b.FillImag(0, b.Size(), v) }

// FillAll sets every sample to (re, im).
func (b *ComplexBuffer[T]) FillAll(re, im T) { b.FillBoth(0, b.Size(), re, im) }

// Cross writes the elementwise complex product of left and right into b.
// b may alias left or right.
func (b *ComplexBuffer[T]) Cross(left, right *ComplexBuffer[T]) error {
	n := b.Size()
	if left.Size() != n || right.Size() != n {
		return preconditionf("ComplexBuffer", "Cross", "size mismatch: dst=%d left=%d right=%d", n, left.Size(), right.Size())
	}
	for i := 0; i < n; i++ {
		lr, li := left.Real[i], left.Imag[i]
		rr, ri := right.Real[i], right.Imag[i]
		re := lr*rr - li*ri
		im := lr*ri + li*rr
		b.Real[i] = re
		b.Imag[i] = im
	}
	return nil
}

// Swap exchanges the real and imaginary arrays elementwise.
func (b *ComplexBuffer[T]) Swap() {
	for i := range b.Real {
		b.Real[i], b.Imag[i] = b.Imag[i], b.Real[i]
	}
}

// Shift circularly shifts the sequence so that new[i] = old[(i+delta) mod
// N]. Positive delta shifts left, negative shifts right. |delta| may
// exceed N.
func (b *ComplexBuffer[T]) Shift(delta int) {
	n := b.Size()
	if n == 0 {
		return
	}
	delta = ((delta % n) + n) % n
	if delta == 0 {
		return
	}
	shiftSlice(b.Real, delta)
	shiftSlice(b.Imag, delta)
}

func shiftSlice[T Float](s []T, delta int) {
	n := len(s)
	tmp := make([]T, n)
	for i := 0; i < n; i++ {
		tmp[i] = s[(i+delta)%n]
	}
	copy(s, tmp)
}

// SetBinReal writes v to real[bin] and, unless bin is DC or Nyquist,
// mirrors it to real[N-bin] (even symmetry).
func (b *ComplexBuffer[T]) SetBinReal(bin int, v T) {
	n := b.Size()
	b.Real[bin] = v
	if bin != 0 && bin != n/2 {
		b.Real[n-bin] = v
	}
}

// SetBinImag writes v to imag[bin] and, unless bin is DC or Nyquist,
// mirrors the negation to imag[N-bin] (odd symmetry).
func (b *ComplexBuffer[T]) SetBinImag(bin int, v T) {
	n := b.Size()
	b.Imag[bin] = v
	if bin != 0 && bin != n/2 {
		b.Imag[n-bin] = -v
	}
}

// SetBin combines SetBinReal and SetBinImag.
func (b *ComplexBuffer[T]) SetBin(bin int, re, im T) {
	b.SetBinReal(bin, re)
	b.SetBinImag(bin, im)
}

// SetBinPolar converts (mag, phase) to rectangular form and calls SetBin.
func (b *ComplexBuffer[T]) SetBinPolar(bin int, mag, phase T) {
	re := mag * T(math.Cos(float64(phase)))
	im := mag * T(math.Sin(float64(phase)))
	b.SetBin(bin, re, im)
}

// Energy returns the one- or two-sided energy of a bin: Squared(bin) at DC
// and Nyquist, Squared(bin)+Squared(N-bin) everywhere else.
func (b *ComplexBuffer[T]) Energy(bin int) T {
	n := b.Size()
	if bin == 0 || bin == n/2 {
		return b.Squared(bin)
	}
	return b.Squared(bin) + b.Squared(n-bin)
}

// bandEndpoints computes the validated, sign-normalized, swapped bin range
// and the caller-supplied values adjusted for a negative-frequency band,
// per the fractional band-fill contract.
func (b *ComplexBuffer[T]) bandEndpoints(op string, startFreq, endFreq float64, re, im T) (startBin, endBin int, contribStart, contribEnd float64, adjRe, adjIm T, err error) {
	if startFreq < -0.5 || startFreq > 0.5 || endFreq < -0.5 || endFreq > 0.5 {
		err = preconditionf("ComplexBuffer", op, "frequencies must be within [-0.5, 0.5], got [%g, %g]", startFreq, endFreq)
		return
	}
	if startFreq*endFreq < 0 {
		err = preconditionf("ComplexBuffer", op, "startFreq and endFreq must have the same sign, got %g and %g", startFreq, endFreq)
		return
	}

	adjRe, adjIm = re, im
	if startFreq < 0 && endFreq < 0 {
		startFreq, endFreq = -startFreq, -endFreq
		adjIm = -adjIm
	}
	if startFreq > endFreq {
		startFreq, endFreq = endFreq, startFreq
	}
	if endFreq > 0.5 {
		err = preconditionf("ComplexBuffer", op, "endFreq %g exceeds 0.5 after normalization", endFreq)
		return
	}

	n := float64(b.Size())
	startFrac := startFreq * n
	endFrac := endFreq * n
	startBin = int(math.Round(startFrac))
	endBin = int(math.Round(endFrac))
	contribStart = 1 - math.Abs(startFrac-math.Round(startFrac))
	contribEnd = 1 - math.Abs(endFrac-math.Round(endFrac))
	return
}

// fillBand implements the shared band-fill algorithm: blended endpoints,
// flat interior, optional real and/or imaginary channel.
func (b *ComplexBuffer[T]) fillBand(op string, startFreq, endFreq float64, useRe, useIm bool, re, im T) error {
	if !useRe && !useIm {
		return preconditionf("ComplexBuffer", op, "band fill must specify real and/or imaginary usage")
	}
	startBin, endBin, contribStart, contribEnd, re, im, err := b.bandEndpoints(op, startFreq, endFreq, re, im)
	if err != nil {
		return err
	}

	setEndpoint := func(bin int, contribution float64) {
		newRe := b.Real[bin]
		newIm := b.Imag[bin]
		if useRe {
			newRe = T(float64(b.Real[bin])*(1-contribution) + float64(re)*contribution)
		}
		if useIm {
			newIm = T(float64(b.Imag[bin])*(1-contribution) + float64(im)*contribution)
		}
		if useRe && useIm {
			b.SetBin(bin, newRe, newIm)
		} else if useRe {
			b.SetBinReal(bin, newRe)
		} else {
			b.SetBinImag(bin, newIm)
		}
	}

	setEndpoint(startBin, contribStart)
	if endBin != startBin {
		setEndpoint(endBin, contribEnd)
		for bin := startBin + 1; bin < endBin; bin++ {
			if useRe {
				b.SetBinReal(bin, re)
			}
			if useIm {
				b.SetBinImag(bin, im)
			}
		}
	}
	return nil
}

// Fill fills an inclusive band of bins, in fractions of the sample rate,
// with (re, im). Both frequencies must lie in [-0.5, 0.5] and have the same
// sign; a negative band is mirrored onto the positive bins with im negated.
func (b *ComplexBuffer[T]) Fill(startFreq, endFreq float64, re, im T) error {
	return b.fillBand("Fill", startFreq, endFreq, true, true, re, im)
}

// FillRealBand fills only the real channel of a band.
func (b *ComplexBuffer[T]) FillRealBand(startFreq, endFreq float64, re T) error {
	return b.fillBand("FillRealBand", startFreq, endFreq, true, false, re, 0)
}

// FillImagBand fills only the imaginary channel of a band.
func (b *ComplexBuffer[T]) FillImagBand(startFreq, endFreq float64, im T) error {
	return b.fillBand("FillImagBand", startFreq, endFreq, false, true, 0, im)
}

// FillPolarBand converts (mag, phase) to rectangular form and fills both
// channels of a band.
func (b *ComplexBuffer[T]) FillPolarBand(startFreq, endFreq float64, mag, phase T) error {
	re := mag * T(math.Cos(float64(phase)))
	im := mag * T(math.Sin(float64(phase)))
	return b.Fill(startFreq, endFreq, re, im)
}

// FillHz is Fill with frequencies given in Hz instead of fractions of the
// sample rate.
func (b *ComplexBuffer[T]) FillHz(startHz, endHz, sampleRate float64, re, im T) error {
	return b.Fill(startHz/sampleRate, endHz/sampleRate, re, im)
}

// EnergyBand integrates Energy over a band using the same fractional
// endpoint weighting as Fill. A band that collapses to a single bin
// returns that bin's weighted contribution.
func (b *ComplexBuffer[T]) EnergyBand(startFreq, endFreq float64) (T, error) {
	startBin, endBin, contribStart, contribEnd, _, _, err := b.bandEndpoints("EnergyBand", startFreq, endFreq, 0, 0)
	if err != nil {
		return 0, err
	}
	total := T(contribStart) * b.Energy(startBin)
	if endBin != startBin {
		total += T(contribEnd) * b.Energy(endBin)
		for bin := startBin + 1; bin < endBin; bin++ {
			total += b.Energy(bin)
		}
	}
	return total, nil
}

// DecomposeEvenOdd splits the spectrum of a complex time-domain signal
// x = r + j*s into the spectra of its real and imaginary components,
// writing FFT(r) into outReal and FFT(s) into outImag.
func (b *ComplexBuffer[T]) DecomposeEvenOdd(outReal, outImag *ComplexBuffer[T]) error {
	n := b.Size()
	if outReal.Size() != n || outImag.Size() != n {
		return preconditionf("ComplexBuffer", "DecomposeEvenOdd", "output size mismatch: n=%d outReal=%d outImag=%d", n, outReal.Size(), outImag.Size())
	}

	outReal.Real[0] = b.Real[0]
	outReal.Imag[0] = 0
	outImag.Real[0] = b.Imag[0]
	outImag.Imag[0] = 0

	half := n / 2
	outReal.Real[half] = b.Real[half]
	outReal.Imag[half] = 0
	outImag.Real[half] = b.Imag[half]
	outImag.Imag[half] = 0

	for i := 1; i < half; i++ {
		k := n - i
		reEven := (b.Real[i] + b.Real[k]) / 2
		reOdd := (b.Real[i] - b.Real[k]) / 2
		imEven := (b.Imag[i] + b.Imag[k]) / 2
		imOdd := (b.Imag[i] - b.Imag[k]) / 2

		outReal.Real[i] = reEven
		outReal.Real[k] = reEven
		outReal.Imag[i] = imOdd
		outReal.Imag[k] = -imOdd

		outImag.Real[i] = imEven
		outImag.Real[k] = imEven
		outImag.Imag[i] = -reOdd
		outImag.Imag[k] = reOdd
	}
	return nil
}
