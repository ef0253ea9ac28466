// Package effects implements the audio effects used to build training
// pairs, each behind the [Effect] contract.
//
// Knobs arrive either in normalized coordinates through [Apply] or in
// physical units through Effect.ProcessPhysical. Every effect returns a
// (primary, counterpart) pair. Ordinary effects return (processed, input).
// Inverse effects such as [Denoise] and [TimeAlign] return (target, input)
// where the input has been derived from a clean target.
//
// Effects:
//   - Compressor: filter-based envelope follower with static gain curve.
//   - Compressor4c: four-knob compressor with separate attack and release smoothing.
//   - Echo: multi-tap echo with fractional delay.
//   - LowPass: Butterworth lowpass.
//   - PitchShifter: phase-vocoder pitch shift.
//   - Denoise: adds uniform noise and swaps the pair.
//   - TimeAlign: resynthesizes an event and jitters its onset.
//
// Build with the fastmath tag to route dB conversions through algo-approx.
package effects
