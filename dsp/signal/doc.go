// Package signal synthesizes the stochastic instrument-like waveforms used as
// effect inputs: sines, plucks, ramps, pulses, spike trains and noise.
//
// Every draw comes from the *rand.Rand held by a [Generator], so a seeded
// generator reproduces its output exactly.
package signal
