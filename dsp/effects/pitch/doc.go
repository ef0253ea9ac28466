// Package pitch provides a phase-vocoder pitch shifter that changes pitch
// while keeping the signal duration.
//
// Small ratios shift spectral bins directly. Larger ratios time-stretch the
// signal with identity phase locking and then resample it back to the
// original length through a Kaiser-windowed polyphase low-pass, so upward
// shifts do not alias.
package pitch
