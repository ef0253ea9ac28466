// Package pass designs Butterworth lowpass cascades as biquad coefficients.
package pass
