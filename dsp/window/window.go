// Package window generates the analysis windows used for STFT framing.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLength is returned when a frame and its window differ in length.
var ErrLength = errors.New("window: frame and window lengths differ")

// Type identifies a cosine-sum window.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	case TypeHamming:
		return "Hamming"
	case TypeBlackman:
		return "Blackman"
	default:
		return "Unknown"
	}
}

// terms are the cosine-sum weights a_k of w(x) = sum a_k cos(2 pi k x).
func (t Type) terms() []float64 {
	switch t {
	case TypeHann:
		return []float64{0.5, -0.5}
	case TypeHamming:
		return []float64{0.54, -0.46}
	case TypeBlackman:
		return []float64{0.42, -0.5, 0.08}
	default:
		return []float64{1}
	}
}

// Option configures Generate.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic drops the final sample of the symmetric window, the form
// that overlap-adds evenly under an FFT frame.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns n window coefficients, or nil for n <= 0.
func Generate(t Type, n int, opts ...Option) []float64 {
	if n <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	span := float64(n - 1)
	if cfg.periodic {
		span = float64(n)
	}

	terms := t.terms()
	w := make([]float64, n)

	for i := range w {
		x := 0.0
		if span > 0 {
			x = float64(i) / span
		}

		for k, a := range terms {
			w[i] += a * math.Cos(2*math.Pi*float64(k)*x)
		}
	}

	return w
}

// Apply multiplies frame in place by w.
func Apply(frame, w []float64) error {
	if len(frame) != len(w) {
		return ErrLength
	}

	vecmath.MulBlockInPlace(frame, w)

	return nil
}
