package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients of one second-order section with a0 normalized to 1.
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// First-order sections leave B2 and A2 at zero.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// DCGain returns H(1). A pole at DC yields 0.
func (c Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return 0
	}

	return (c.B0 + c.B1 + c.B2) / den
}

// Response evaluates H at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// Section runs Coefficients in Direct Form II Transposed:
//
//	y  = B0 x + s1
//	s1 = B1 x - A1 y + s2
//	s2 = B2 x - A2 y
type Section struct {
	Coefficients

	s1, s2 float64
}

// NewSection returns a Section with cleared state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.s1
	s.s1 = s.B1*x - s.A1*y + s.s2
	s.s2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	s1, s2 := s.s1, s.s2
	for i, x := range buf {
		y := s.B0*x + s1
		s1 = s.B1*x - s.A1*y + s2
		s2 = s.B2*x - s.A2*y
		buf[i] = y
	}

	s.s1, s.s2 = s1, s2
}

// ProcessPrimed settles the section on buf[0] and then filters buf in
// place, so a signal that starts away from zero has no onset ramp.
func (s *Section) ProcessPrimed(buf []float64) {
	if len(buf) == 0 {
		return
	}

	s.SetSteadyState(buf[0])
	s.ProcessBlock(buf)
}

// SetSteadyState loads the state reached after an endless constant input
// x0. The next output for input x0 is DCGain()*x0.
func (s *Section) SetSteadyState(x0 float64) {
	y := s.DCGain() * x0
	s.s2 = s.B2*x0 - s.A2*y
	s.s1 = y - s.B0*x0
}

// Reset clears the state.
func (s *Section) Reset() {
	s.s1, s.s2 = 0, 0
}
