// Package level accumulates peak, RMS and clipping statistics of signals.
//
// A Meter is fed block by block and can be merged with meters that saw
// other signals, so concurrent renderers can each keep their own and
// combine them at the end.
package level

import (
	"math"

	"github.com/jraju9/signaltrain/dsp/core"
)

// DefaultClipLevel is the magnitude at which a sample counts as clipped
// when written to fixed-point PCM.
const DefaultClipLevel = 1.0

// Stats summarizes everything a Meter has seen.
type Stats struct {
	Length int
	// Signals is the number of Update calls.
	Signals       int
	DC            float64
	RMS           float64
	RMSDB         float64
	Peak          float64
	PeakDB        float64
	CrestFactor   float64 // peak / RMS, 0 for silence
	Clipped       int     // samples with |x| >= clip level
	ZeroCrossings int
}

// Option configures a Meter.
type Option func(*Meter)

// WithClipLevel sets the clipping threshold. Default is 1.
func WithClipLevel(level float64) Option {
	return func(m *Meter) { m.clipLevel = level }
}

// Meter is a running level accumulator. The zero value is not usable; use
// NewMeter.
type Meter struct {
	clipLevel float64

	n             int
	signals       int
	sum           float64
	sumSq         float64
	peak          float64
	clipped       int
	zeroCrossings int
}

// NewMeter returns an empty Meter.
func NewMeter(opts ...Option) *Meter {
	m := &Meter{clipLevel: DefaultClipLevel}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Update adds one signal. Zero crossings are counted within the signal
// only.
func (m *Meter) Update(samples []float64) {
	m.signals++

	for i, x := range samples {
		m.sum += x
		m.sumSq += x * x

		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
		}

		if a >= m.clipLevel {
			m.clipped++
		}

		if i > 0 && samples[i-1]*x < 0 {
			m.zeroCrossings++
		}
	}

	m.n += len(samples)
}

// Merge adds the totals of other to m. other is left unchanged.
func (m *Meter) Merge(other *Meter) {
	m.n += other.n
	m.signals += other.signals
	m.sum += other.sum
	m.sumSq += other.sumSq
	m.peak = max(m.peak, other.peak)
	m.clipped += other.clipped
	m.zeroCrossings += other.zeroCrossings
}

// Result computes the statistics accumulated so far. dB fields are -Inf
// for silence.
func (m *Meter) Result() Stats {
	s := Stats{
		Length:        m.n,
		Signals:       m.signals,
		Peak:          m.peak,
		PeakDB:        core.LinearToDB(m.peak),
		RMSDB:         math.Inf(-1),
		Clipped:       m.clipped,
		ZeroCrossings: m.zeroCrossings,
	}

	if m.n == 0 {
		return s
	}

	nf := float64(m.n)
	s.DC = m.sum / nf
	s.RMS = math.Sqrt(m.sumSq / nf)
	s.RMSDB = core.LinearToDB(s.RMS)

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	return s
}

// Reset clears the accumulated data and keeps the clip level.
func (m *Meter) Reset() {
	*m = Meter{clipLevel: m.clipLevel}
}

// Measure returns the statistics of a single signal.
func Measure(x []float64, opts ...Option) Stats {
	m := NewMeter(opts...)
	m.Update(x)

	return m.Result()
}
