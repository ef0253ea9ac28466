// Package audiofile reads and writes mono PCM WAV files as float64 samples.
package audiofile

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DefaultBitDepth is the PCM word size Write uses unless told otherwise.
const DefaultBitDepth = 16

const wavFormatPCM = 1

var (
	// ErrInvalidFile is returned for files that are not RIFF/WAVE.
	ErrInvalidFile = errors.New("audiofile: invalid WAV file")
	// ErrBitDepth is returned for unsupported PCM word sizes.
	ErrBitDepth = errors.New("audiofile: unsupported bit depth")
)

// Option configures Write.
type Option func(*writeConfig)

type writeConfig struct {
	bitDepth int
}

// WithBitDepth sets the PCM word size: 8, 16, 24 or 32 bits.
func WithBitDepth(bits int) Option {
	return func(c *writeConfig) { c.bitDepth = bits }
}

// Read decodes the WAV file at path. Multi-channel files yield their first
// channel. Samples are scaled to [-1, 1). The second result is the sample
// rate in Hz.
func Read(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audiofile: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	bits := int(buf.SourceBitDepth)
	if bits == 0 {
		bits = int(dec.BitDepth)
	}

	full, offset, err := scaleFor(bits)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := range out {
		out[i] = (float64(buf.Data[i*channels]) - offset) / full
	}

	return out, buf.Format.SampleRate, nil
}

// Write encodes samples as a mono PCM WAV file at path. Samples outside
// [-1, 1] are clipped.
func Write(path string, samples []float64, sampleRate int, opts ...Option) (err error) {
	cfg := writeConfig{bitDepth: DefaultBitDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	full, offset, err := scaleFor(cfg.bitDepth)
	if err != nil {
		return err
	}

	if sampleRate <= 0 {
		return fmt.Errorf("audiofile: sample rate must be > 0: %d", sampleRate)
	}

	data := make([]int, len(samples))
	top := full - 1
	for i, v := range samples {
		q := math.Round(v * full)
		q = math.Max(-full, math.Min(top, q))
		data[i] = int(q + offset)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("audiofile: close %s: %w", path, cerr)
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, cfg.bitDepth, 1, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: cfg.bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: write %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: finalize %s: %w", path, err)
	}

	return nil
}

// scaleFor returns the full-scale magnitude and zero offset for a PCM word
// size. 8-bit WAV is unsigned.
func scaleFor(bits int) (full, offset float64, err error) {
	switch bits {
	case 8:
		return 128, 128, nil
	case 16, 24, 32:
		return float64(int64(1) << (bits - 1)), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrBitDepth, bits)
	}
}
