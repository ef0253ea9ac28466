// Package knob maps effect controls between the normalized coordinates a
// model sees, centered on zero over [-0.5, 0.5], and the physical units an
// effect consumes.
//
// It also enumerates evenly spaced knob grids for systematic dataset
// coverage and draws random settings that favor the ends of each range.
package knob
