package dataset

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/internal/audiofile"
)

// WindowReader hands out size-sample windows of the WAV files in a
// directory. It starts on a random file and stays there until SetNextFile
// asks for another. In random mode each window starts at a random offset;
// in sequential mode windows follow each other and the reader moves on to
// a new file when the current one runs out.
//
// A WindowReader is not safe for concurrent use.
type WindowReader struct {
	files      []string
	size       int
	sequential bool
	rng        *rand.Rand
	logger     *slog.Logger

	data     []float64
	start    int
	nextFile bool
}

// NewWindowReader lists the .wav files in dir. WithSequential,
// WithDatasetSeed and WithLogger apply.
func NewWindowReader(dir string, size int, opts ...Option) (*WindowReader, error) {
	cfg := applyOptions(opts)

	if size <= 0 {
		return nil, fmt.Errorf("%w: window size must be > 0: %d", ErrChunkSize, size)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset: list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), wavExt) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("dataset: no .wav files in %s", dir)
	}

	sort.Strings(files)

	return &WindowReader{
		files:      files,
		size:       size,
		sequential: cfg.sequential,
		rng:        rand.New(rand.NewPCG(cfg.seed, 0)),
		logger:     cfg.logger,
		nextFile:   true,
	}, nil
}

// SetNextFile makes the following Next read from a newly chosen file when
// next is true.
func (r *WindowReader) SetNextFile(next bool) { r.nextFile = next }

// Next returns a fresh copy of the next window. The first call always
// loads a file.
func (r *WindowReader) Next() ([]float64, error) {
	if r.nextFile || r.data == nil {
		if err := r.load(); err != nil {
			return nil, err
		}
	}

	if r.sequential {
		r.start += r.size
		if r.start+r.size > len(r.data) {
			if err := r.load(); err != nil {
				return nil, err
			}
			r.start = 0
		}
	} else {
		r.start = r.rng.IntN(len(r.data) - r.size + 1)
	}

	return core.Clone(r.data[r.start : r.start+r.size]), nil
}

func (r *WindowReader) load() error {
	name := r.files[r.rng.IntN(len(r.files))]

	data, _, err := audiofile.Read(name)
	if err != nil {
		return err
	}

	if len(data) < r.size {
		return fmt.Errorf("%w: %s has %d samples, window is %d", ErrChunkSize, filepath.Base(name), len(data), r.size)
	}

	r.logger.Debug("reading new file", slog.String("file", name), slog.Int("samples", len(data)))

	r.data = data
	r.start = -r.size
	r.nextFile = false

	return nil
}
