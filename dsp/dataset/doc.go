// Package dataset builds (input, target, knobs) training triples.
//
// Pair generators (TimeAlignPairs, PitchShiftedPairs, GenAudio) fill
// stacks of fixed-size chunks and fan work out per chunk. Each chunk owns
// an RNG seeded from (seed, chunk index), so results do not depend on the
// worker count.
//
// SynthDataset synthesizes items on the fly from signal generators and an
// effect. FileDataset serves random windows of pre-rendered input_/target_
// WAV pairs. WindowReader walks windows of arbitrary WAV files.
package dataset
