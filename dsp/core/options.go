package core

import "math"

const (
	// DefaultSampleRate is the rate every effect and generator assumes unless told otherwise.
	DefaultSampleRate = 44100.0
	// DefaultChunkSize is the window length of one training example.
	DefaultChunkSize = 4096
)

// ProcessorConfig defines common processing settings shared by effects,
// generators and datasets.
type ProcessorConfig struct {
	SampleRate float64
	ChunkSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used for dataset synthesis.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		ChunkSize:  DefaultChunkSize,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsFinitePositive(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChunkSize sets the chunk (window) length in samples.
func WithChunkSize(chunkSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if chunkSize > 0 {
			cfg.ChunkSize = chunkSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// IsFinitePositive reports whether v is > 0 and neither NaN nor Inf.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
