package biquad

import (
	"math"
	"math/cmplx"
)

// Chain cascades sections in series. Butterworth designs of any order are
// run as a Chain.
type Chain struct {
	sections []Section
}

// NewChain returns a cascade with one cleared Section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i, cf := range coeffs {
		c.sections[i].Coefficients = cf
	}

	return c
}

// Len returns the number of sections.
func (c *Chain) Len() int { return len(c.sections) }

// ProcessSample runs x through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place, one section at a time.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Filter returns a filtered copy of src. State carries over between calls.
func (c *Chain) Filter(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	c.ProcessBlock(out)

	return out
}

// SetSteadyState settles every section for a constant input x0.
func (c *Chain) SetSteadyState(x0 float64) {
	for i := range c.sections {
		c.sections[i].SetSteadyState(x0)
		x0 *= c.sections[i].DCGain()
	}
}

// Reset clears all sections.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Response is the product of the section responses at freqHz.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns 20*log10|H(freqHz)|.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
