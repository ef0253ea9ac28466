package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jraju9/signaltrain/dsp/effects"
	"github.com/jraju9/signaltrain/dsp/knob"
	"github.com/jraju9/signaltrain/internal/audiofile"
	"github.com/jraju9/signaltrain/internal/testutil"
)

// writePairs renders n echo pairs of length samples into dir.
func writePairs(t *testing.T, dir string, n, length int) *effects.Echo {
	t.Helper()
	e := effects.NewEcho(8000)
	for id := range n {
		x := testutil.DeterministicNoise(uint64(id), 0.4, length)
		phys := []float64{100 + float64(id), 0.5, 2}
		y, _, err := e.ProcessPhysical(x, phys, nil)
		if err != nil {
			t.Fatalf("ProcessPhysical error: %v", err)
		}
		if err := audiofile.Write(filepath.Join(dir, InputName(id)), x, 8000); err != nil {
			t.Fatal(err)
		}
		if err := audiofile.Write(filepath.Join(dir, TargetName(id, e.Descriptor().Name, phys)), y, 8000); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func TestFileDatasetItems(t *testing.T) {
	dir := t.TempDir()
	e := writePairs(t, dir, 3, 4000)

	for _, preload := range []bool{true, false} {
		d, err := NewFileDataset(dir, 1000, e,
			WithPreload(preload), WithYSize(200), WithDatapoints(7),
			WithAugment(false, AugmentOptions{}), WithLogger(quietLogger()))
		if err != nil {
			t.Fatalf("NewFileDataset error: %v", err)
		}
		if d.Len() != 7 || d.NumPairs() != 3 {
			t.Fatalf("Len/NumPairs = %d/%d", d.Len(), d.NumPairs())
		}

		for range 10 {
			item, err := d.Item(0)
			if err != nil {
				t.Fatalf("Item error: %v", err)
			}
			if len(item.Input) != 1000 || len(item.Target) != 200 || len(item.Knobs) != 3 {
				t.Fatalf("shapes %d/%d/%d", len(item.Input), len(item.Target), len(item.Knobs))
			}

			// Knob 0 encodes the pair id; the ratio normalizes to 0.
			delay := knob.Range{Min: 100, Max: 1500}.ToPhysical(float64(item.Knobs[0]))
			if delay < 99.5 || delay > 102.5 {
				t.Fatalf("delay knob %v not one of the written values", delay)
			}
			if item.Knobs[1] > 1e-6 || item.Knobs[1] < -1e-6 {
				t.Fatalf("ratio knob = %v, want 0", item.Knobs[1])
			}
		}
	}
}

func TestFileDatasetRerunMatchesFiles(t *testing.T) {
	dir := t.TempDir()
	e := writePairs(t, dir, 2, 3000)

	d, err := NewFileDataset(dir, 1000, e, WithRerun(true), WithYSize(400),
		WithAugment(false, AugmentOptions{}), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewFileDataset error: %v", err)
	}

	item, err := d.Item(0)
	if err != nil {
		t.Fatalf("Item error: %v", err)
	}

	// The rerun target is the echo of the input window.
	x := make([]float64, len(item.Input))
	for i, v := range item.Input {
		x[i] = float64(v)
	}
	phys, _ := knob.ToPhysical(e.Descriptor().Ranges(), []float64{float64(item.Knobs[0]), 0, 0})
	y, _, _ := e.ProcessPhysical(x, phys, nil)
	want := make([]float32, 400)
	for i := range want {
		want[i] = float32(y[len(y)-400+i])
	}
	testutil.RequireFloat32NearlyEqual(t, item.Target, want, 1e-3)
}

func TestFileDatasetSkip(t *testing.T) {
	dir := t.TempDir()
	e := writePairs(t, dir, 1, 3000)

	d, err := NewFileDataset(dir, 1000, e, WithSkipFactor(0.5),
		WithAugment(false, AugmentOptions{}), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewFileDataset error: %v", err)
	}

	item, err := d.Item(0)
	if err != nil {
		t.Fatalf("Item error: %v", err)
	}
	testutil.RequireFloat32NearlyEqual(t, item.Target[:500], item.Input[:500], 0)
}

func TestFileDatasetPairingErrors(t *testing.T) {
	t.Run("count", func(t *testing.T) {
		dir := t.TempDir()
		e := writePairs(t, dir, 2, 100)
		if err := os.Remove(filepath.Join(dir, InputName(1))); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileDataset(dir, 10, e, WithLogger(quietLogger())); !errors.Is(err, ErrFilePairing) {
			t.Fatalf("err = %v, want ErrFilePairing", err)
		}
	})

	t.Run("id", func(t *testing.T) {
		dir := t.TempDir()
		e := writePairs(t, dir, 1, 100)
		if err := os.Rename(filepath.Join(dir, InputName(0)), filepath.Join(dir, InputName(5))); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileDataset(dir, 10, e, WithLogger(quietLogger())); !errors.Is(err, ErrFilePairing) {
			t.Fatalf("err = %v, want ErrFilePairing", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := NewFileDataset(t.TempDir(), 10, effects.NewEcho(8000), WithLogger(quietLogger())); !errors.Is(err, ErrFilePairing) {
			t.Fatalf("err = %v, want ErrFilePairing", err)
		}
	})
}

func TestFileDatasetShortFiles(t *testing.T) {
	dir := t.TempDir()
	e := writePairs(t, dir, 1, 500)

	d, err := NewFileDataset(dir, 500, e, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewFileDataset error: %v", err)
	}
	if _, err := d.Item(0); !errors.Is(err, ErrChunkSize) {
		t.Fatalf("err = %v, want ErrChunkSize", err)
	}
}

func TestFileDatasetInverseSwapsHalves(t *testing.T) {
	dir := t.TempDir()
	clean := testutil.DeterministicSine(200, 8000, 0.5, 2000)
	noisy := testutil.DeterministicNoise(1, 0.9, 2000)

	// Inverse effects store the clean signal as input_.
	if err := audiofile.Write(filepath.Join(dir, InputName(0)), clean, 8000); err != nil {
		t.Fatal(err)
	}
	if err := audiofile.Write(filepath.Join(dir, TargetName(0, effects.NameDenoise, []float64{0.1})), noisy, 8000); err != nil {
		t.Fatal(err)
	}

	d, err := NewFileDataset(dir, 1000, effects.NewDenoise(8000),
		WithAugment(false, AugmentOptions{}), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewFileDataset error: %v", err)
	}
	item, err := d.Item(0)
	if err != nil {
		t.Fatalf("Item error: %v", err)
	}

	// Targets are the clean sine, which never exceeds 0.5.
	for i, v := range item.Target {
		if v > 0.5001 || v < -0.5001 {
			t.Fatalf("target[%d] = %v, not from the clean file", i, v)
		}
	}
	found := false
	for i := range item.Input {
		if item.Input[i] != item.Target[i] {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("input equals target")
	}
}
