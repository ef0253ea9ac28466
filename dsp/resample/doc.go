// Package resample provides rational sample-rate conversion with a
// Kaiser-windowed polyphase FIR anti-aliasing filter.
//
// Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// A Resampler streams blocks and keeps the filter delay. Resample is the
// one-shot form: it removes the filter delay and flushes the tail, so
// out[m] lines up with input position m*down/up.
package resample
