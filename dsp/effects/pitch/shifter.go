package pitch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/interp"
	"github.com/jraju9/signaltrain/dsp/resample"
	"github.com/jraju9/signaltrain/dsp/window"
)

const (
	defaultFrameSize   = 2048
	defaultAnalysisHop = 512
	minFrameSize       = 64
	normFloor          = 1e-12

	// MinRatio and MaxRatio bound the pitch ratio (two octaves either way).
	MinRatio = 0.25
	MaxRatio = 4.0

	// binShiftThreshold is the largest |ratio-1| handled by direct bin shifting.
	binShiftThreshold = 0.15
	identityEps       = 1e-9
)

// Shifter performs frequency-domain pitch shifting on whole buffers.
// It is not safe for concurrent use.
type Shifter struct {
	sampleRate  float64
	frameSize   int
	analysisHop int
	windowType  window.Type
	quality     resample.Quality

	plan *algofft.Plan[complex128]

	windowCoeffs []float64
	frame        []float64
	omega        []float64
	prevPhase    []float64
	sumPhase     []float64

	analysisSpectrum  []complex128
	synthesisSpectrum []complex128
	timeFrame         []complex128

	magnitudes  []float64
	instFreqs   []float64
	shiftedMag  []float64
	shiftedFreq []float64
	peakBins    []int
}

// Option configures a Shifter.
type Option func(*Shifter)

// WithFrameSize sets the FFT frame size. It must be a power of two >= 64.
func WithFrameSize(size int) Option {
	return func(s *Shifter) { s.frameSize = size }
}

// WithAnalysisHop sets the analysis hop in samples.
func WithAnalysisHop(hop int) Option {
	return func(s *Shifter) { s.analysisHop = hop }
}

// WithWindow sets the STFT window shape.
func WithWindow(t window.Type) Option {
	return func(s *Shifter) { s.windowType = t }
}

// WithResampleQuality sets the anti-aliasing quality used when the
// time-stretched signal is resampled back to the input length.
func WithResampleQuality(q resample.Quality) Option {
	return func(s *Shifter) { s.quality = q }
}

// New creates a Shifter for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Shifter, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("pitch shifter sample rate must be positive and finite: %f", sampleRate)
	}

	s := &Shifter{
		sampleRate:  sampleRate,
		frameSize:   defaultFrameSize,
		analysisHop: defaultAnalysisHop,
		windowType:  window.TypeHann,
		quality:     resample.QualityBalanced,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.frameSize < minFrameSize || s.frameSize&(s.frameSize-1) != 0 {
		return nil, fmt.Errorf("pitch shifter frame size must be power-of-two and >= %d: %d", minFrameSize, s.frameSize)
	}

	if s.analysisHop <= 0 || s.analysisHop >= s.frameSize {
		return nil, fmt.Errorf("pitch shifter analysis hop must be in [1, %d): %d", s.frameSize, s.analysisHop)
	}

	if err := s.rebuildState(); err != nil {
		return nil, err
	}

	return s, nil
}

// SampleRate returns the sample rate in Hz.
func (s *Shifter) SampleRate() float64 { return s.sampleRate }

// FrameSize returns the FFT frame size.
func (s *Shifter) FrameSize() int { return s.frameSize }

// SemitonesToRatio converts a semitone offset to a frequency ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// EffectiveRatio returns the ratio actually realized for a requested ratio.
// The time-stretch path quantizes it to synthesisHop/analysisHop.
func (s *Shifter) EffectiveRatio(ratio float64) float64 {
	if math.Abs(ratio-1) <= binShiftThreshold {
		return ratio
	}

	return float64(s.synthesisHop(ratio)) / float64(s.analysisHop)
}

// ShiftSemitones shifts x by the given number of semitones.
func (s *Shifter) ShiftSemitones(x []float64, semitones float64) ([]float64, error) {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) {
		return nil, fmt.Errorf("pitch shift semitones must be finite: %f", semitones)
	}

	return s.Shift(x, SemitonesToRatio(semitones))
}

// Shift returns x with every frequency multiplied by ratio. The output has
// len(x) samples.
func (s *Shifter) Shift(x []float64, ratio float64) ([]float64, error) {
	if !core.IsFinitePositive(ratio) || ratio < MinRatio || ratio > MaxRatio {
		return nil, fmt.Errorf("pitch ratio must be in [%g, %g]: %f", MinRatio, MaxRatio, ratio)
	}

	switch {
	case len(x) == 0:
		return []float64{}, nil
	case math.Abs(ratio-1) <= identityEps:
		return core.Clone(x), nil
	case math.Abs(ratio-1) <= binShiftThreshold:
		return s.binShift(x, ratio)
	default:
		return s.stretchAndResample(x, ratio)
	}
}

func (s *Shifter) synthesisHop(ratio float64) int {
	return max(int(math.Round(float64(s.analysisHop)*ratio)), 1)
}

func (s *Shifter) reset() {
	for i := range s.prevPhase {
		s.prevPhase[i] = 0
		s.sumPhase[i] = 0
	}
}

// analyze windows the frame at pos, transforms it and fills magnitudes and
// instantaneous frequencies.
func (s *Shifter) analyze(x []float64, pos int) error {
	clear(s.frame)
	if pos < len(x) {
		copy(s.frame, x[pos:])
	}

	if err := window.Apply(s.frame, s.windowCoeffs); err != nil {
		return err
	}

	for i, v := range s.frame {
		s.analysisSpectrum[i] = complex(v, 0)
	}

	if err := s.plan.Forward(s.analysisSpectrum, s.analysisSpectrum); err != nil {
		return fmt.Errorf("pitch shifter: forward FFT failed: %w", err)
	}

	hop := float64(s.analysisHop)
	for k := 0; k <= s.frameSize/2; k++ {
		re := real(s.analysisSpectrum[k])
		im := imag(s.analysisSpectrum[k])
		s.magnitudes[k] = math.Hypot(re, im)
		phase := math.Atan2(im, re)

		delta := wrapPhase(phase - s.prevPhase[k] - s.omega[k]*hop)
		s.instFreqs[k] = s.omega[k] + delta/hop
		s.prevPhase[k] = phase
	}

	return nil
}

// synthesize mirrors the half spectrum, inverts it and overlap-adds the
// windowed frame into out at pos.
func (s *Shifter) synthesize(out, norm []float64, pos int) error {
	half := s.frameSize / 2

	s.synthesisSpectrum[0] = complex(real(s.synthesisSpectrum[0]), 0)
	s.synthesisSpectrum[half] = complex(real(s.synthesisSpectrum[half]), 0)

	for k := 1; k < half; k++ {
		v := s.synthesisSpectrum[k]
		s.synthesisSpectrum[s.frameSize-k] = complex(real(v), -imag(v))
	}

	if err := s.plan.Inverse(s.timeFrame, s.synthesisSpectrum); err != nil {
		return fmt.Errorf("pitch shifter: inverse FFT failed: %w", err)
	}

	for i := range s.frameSize {
		w := s.windowCoeffs[i]
		out[pos+i] += real(s.timeFrame[i]) * w
		norm[pos+i] += w * w
	}

	return nil
}

func (s *Shifter) binShift(x []float64, ratio float64) ([]float64, error) {
	s.reset()

	hop := s.analysisHop
	frameCount := 1 + (len(x)-1)/hop
	outLen := (frameCount-1)*hop + s.frameSize
	output := make([]float64, outLen)
	norm := make([]float64, outLen)

	half := s.frameSize / 2
	hopF := float64(hop)

	for frame := range frameCount {
		pos := frame * hop
		if err := s.analyze(x, pos); err != nil {
			return nil, err
		}

		for k := 0; k <= half; k++ {
			srcK := float64(k) / ratio
			if srcK >= float64(half) {
				s.shiftedMag[k] = 0
				s.shiftedFreq[k] = s.omega[k]

				continue
			}

			lo := int(srcK)
			frac := srcK - float64(lo)
			hi := min(lo+1, half)
			s.shiftedMag[k] = interp.Linear(s.magnitudes[lo], s.magnitudes[hi], frac)
			s.shiftedFreq[k] = interp.Linear(s.instFreqs[lo], s.instFreqs[hi], frac) * ratio
		}

		for k := 0; k <= half; k++ {
			s.sumPhase[k] += s.shiftedFreq[k] * hopF
			s.synthesisSpectrum[k] = complex(
				s.shiftedMag[k]*math.Cos(s.sumPhase[k]),
				s.shiftedMag[k]*math.Sin(s.sumPhase[k]),
			)
		}

		if err := s.synthesize(output, norm, pos); err != nil {
			return nil, err
		}
	}

	normalize(output, norm)

	return fitLength(output, len(x)), nil
}

func (s *Shifter) stretchAndResample(x []float64, ratio float64) ([]float64, error) {
	s.reset()

	synthesisHop := s.synthesisHop(ratio)
	frameCount := 1 + (len(x)-1)/s.analysisHop
	stretchedLen := (frameCount-1)*synthesisHop + s.frameSize
	stretched := make([]float64, stretchedLen)
	norm := make([]float64, stretchedLen)

	half := s.frameSize / 2
	synthesisHopF := float64(synthesisHop)

	for frame := range frameCount {
		if err := s.analyze(x, frame*s.analysisHop); err != nil {
			return nil, err
		}

		s.lockPhases(half, synthesisHopF)

		for k := 0; k <= half; k++ {
			s.synthesisSpectrum[k] = complex(
				s.magnitudes[k]*math.Cos(s.sumPhase[k]),
				s.magnitudes[k]*math.Sin(s.sumPhase[k]),
			)
		}

		if err := s.synthesize(stretched, norm, frame*synthesisHop); err != nil {
			return nil, err
		}
	}

	normalize(stretched, norm)

	// Upward shifts decimate, so the resampler's low-pass removes content
	// that would otherwise fold back below Nyquist.
	out, err := resample.Resample(stretched, s.analysisHop, synthesisHop, resample.WithQuality(s.quality))
	if err != nil {
		return nil, fmt.Errorf("pitch shifter: resampling failed: %w", err)
	}

	return fitLength(out, len(x)), nil
}

// lockPhases advances peak phases by their instantaneous frequency and ties
// every other bin to its nearest peak (identity phase locking).
func (s *Shifter) lockPhases(half int, hop float64) {
	s.peakBins = s.peakBins[:0]
	for k := 1; k < half; k++ {
		if s.magnitudes[k] >= s.magnitudes[k-1] && s.magnitudes[k] > s.magnitudes[k+1] {
			s.peakBins = append(s.peakBins, k)
		}
	}

	if len(s.peakBins) == 0 {
		for k := 0; k <= half; k++ {
			s.sumPhase[k] += s.instFreqs[k] * hop
		}

		return
	}

	for _, pk := range s.peakBins {
		s.sumPhase[pk] += s.instFreqs[pk] * hop
	}

	peakIdx := 0
	for k := 0; k <= half; k++ {
		for peakIdx+1 < len(s.peakBins) && absInt(s.peakBins[peakIdx+1]-k) < absInt(s.peakBins[peakIdx]-k) {
			peakIdx++
		}

		if pk := s.peakBins[peakIdx]; k != pk {
			s.sumPhase[k] = s.sumPhase[pk] + (s.prevPhase[k] - s.prevPhase[pk])
		}
	}
}

func (s *Shifter) rebuildState() error {
	plan, err := algofft.NewPlan64(s.frameSize)
	if err != nil {
		return fmt.Errorf("pitch shifter: failed to create FFT plan: %w", err)
	}

	s.plan = plan
	s.windowCoeffs = window.Generate(s.windowType, s.frameSize, window.WithPeriodic())

	bins := s.frameSize/2 + 1

	s.omega = make([]float64, bins)
	for k := range bins {
		s.omega[k] = 2 * math.Pi * float64(k) / float64(s.frameSize)
	}

	s.prevPhase = make([]float64, bins)
	s.sumPhase = make([]float64, bins)
	s.frame = make([]float64, s.frameSize)
	s.analysisSpectrum = make([]complex128, s.frameSize)
	s.synthesisSpectrum = make([]complex128, s.frameSize)
	s.timeFrame = make([]complex128, s.frameSize)

	s.magnitudes = make([]float64, bins)
	s.instFreqs = make([]float64, bins)
	s.shiftedMag = make([]float64, bins)
	s.shiftedFreq = make([]float64, bins)
	s.peakBins = make([]int, 0, bins)

	return nil
}

func normalize(out, norm []float64) {
	for i := range out {
		if norm[i] > normFloor {
			out[i] /= norm[i]
		}
	}
}

func fitLength(in []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, in)

	return out
}

func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
