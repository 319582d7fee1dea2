// Package window provides windowing functions for amplitude-envelope
// shaping of filter kernels.
package window

import (
	"fmt"
	"math"
)

// CoeffFunc computes the window coefficient at index i of a window with
// size total coefficients. Coefficients depend only on (i, size); a
// CoeffFunc has no other state.
type CoeffFunc func(i, size int) float64

var registry = map[string]CoeffFunc{
	"blackman": Blackman,
	"hann":     Hann,
	"hamming":  Hamming,
	"bartlett": Bartlett,
	"lanczos":  Lanczos,
}

// Register adds a named window shape to the package-level registry so it
// can be selected by name via NewNamed, in addition to being passed
// directly to New. Defining a new window shape is nothing more than
// supplying a CoeffFunc; Register is how that shape becomes selectable
// without the caller importing the function itself.
func Register(name string, fn CoeffFunc) {
	registry[name] = fn
}

// Lookup returns the named window shape, if registered.
func Lookup(name string) (CoeffFunc, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Float is the set of scalar types a Window can be instantiated over.
type Float interface {
	~float32 | ~float64
}

// Window is an immutable-size vector of M non-negative real coefficients,
// precomputed at construction from a CoeffFunc. Coefficients never change
// once constructed.
type Window[T Float] struct {
	Coefficients []T
}

// New precomputes a Window of the given size from fn.
func New[T Float](size int, fn CoeffFunc) *Window[T] {
	w := &Window[T]{Coefficients: make([]T, size)}
	for i := 0; i < size; i++ {
		w.Coefficients[i] = T(fn(i, size))
	}
	return w
}

// NewNamed looks up a registered window shape by name and constructs it.
func NewNamed[T Float](size int, name string) (*Window[T], error) {
	fn, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("window: no window shape registered under name %q", name)
	}
	return New[T](size, fn), nil
}

// Size returns M.
func (w *Window[T]) Size() int { return len(w.Coefficients) }

// Apply multiplies real[i] *= w[i] for i in [0, M). real must have length
// >= M.
func (w *Window[T]) Apply(real []T) error {
	if len(real) < w.Size() {
		return fmt.Errorf("window: Apply: array length %d shorter than window size %d", len(real), w.Size())
	}
	for i, c := range w.Coefficients {
		real[i] *= c
	}
	return nil
}

// ApplyBoth multiplies both real[i] and imag[i] by w[i] for i in [0, M).
func (w *Window[T]) ApplyBoth(real, imag []T) error {
	if err := w.Apply(real); err != nil {
		return err
	}
	return w.Apply(imag)
}

// Blackman is the Blackman window: w[i] = 7938/18608
// - (9240/18608)*cos(2*pi*i/(M-1)) + (1430/18608)*cos(4*pi*i/(M-1)).
func Blackman(i, size int) float64 {
	m := denom(size)
	x := float64(i)
	return 7938.0/18608.0 -
		(9240.0/18608.0)*math.Cos(2*math.Pi*x/m) +
		(1430.0/18608.0)*math.Cos(4*math.Pi*x/m)
}

// Hann is the Hann window.
func Hann(i, size int) float64 {
	return hannHamming(0.5, i, size)
}

// Hamming is the Hamming window.
func Hamming(i, size int) float64 {
	return hannHamming(0.53836, i, size)
}

func hannHamming(a float64, i, size int) float64 {
	return a - (1-a)*math.Cos(2*math.Pi*float64(i)/denom(size))
}

// Bartlett is the triangular Bartlett window.
func Bartlett(i, size int) float64 {
	m := denom(size)
	return 1 - 2*math.Abs(float64(i)-m/2)/m
}

// Lanczos is the Lanczos window, built from Sinc.
func Lanczos(i, size int) float64 {
	return Sinc((2*float64(i))/denom(size) - 1)
}

// Sinc is the normalized cardinal sinc function.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// denom returns the symmetric-window normalizing denominator M-1, guarding
// the degenerate single-sample window.
func denom(size int) float64 {
	if size <= 1 {
		return 1
	}
	return float64(size - 1)
}
