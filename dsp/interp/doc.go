// Package interp provides fractional-position interpolation primitives.
//
// [Linear] is continuous in the fractional position, which keeps fractional
// delays and spectral bin reads smooth as their position varies.
package interp
