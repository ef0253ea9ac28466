// Package biquad runs first- and second-order IIR sections.
//
// Envelope followers use a single primed [Section]; the lowpass effect
// runs a Butterworth [Chain]. Coefficients come from dsp/filter/design/pass.
package biquad
