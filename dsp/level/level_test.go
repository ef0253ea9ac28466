package level

import (
	"math"
	"testing"

	"github.com/jraju9/signaltrain/internal/testutil"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want Stats
	}{
		{
			name: "alternating",
			in:   []float64{1, -1, 1, -1},
			want: Stats{Length: 4, Signals: 1, RMS: 1, Peak: 1, CrestFactor: 1, Clipped: 4, ZeroCrossings: 3},
		},
		{
			name: "dc",
			in:   []float64{0.5, 0.5},
			want: Stats{Length: 2, Signals: 1, DC: 0.5, RMS: 0.5, Peak: 0.5, CrestFactor: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Measure(tt.in)
			got.RMSDB, got.PeakDB = 0, 0
			if got != tt.want {
				t.Fatalf("Measure = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMeasureSilence(t *testing.T) {
	s := Measure(make([]float64, 8))
	if !math.IsInf(s.PeakDB, -1) || !math.IsInf(s.RMSDB, -1) || s.CrestFactor != 0 {
		t.Fatalf("silence stats = %+v", s)
	}

	empty := NewMeter().Result()
	if empty.Length != 0 || !math.IsInf(empty.RMSDB, -1) {
		t.Fatalf("empty stats = %+v", empty)
	}
}

func TestMeterMergeMatchesSingleMeter(t *testing.T) {
	a := testutil.DeterministicNoise(1, 0.8, 300)
	b := testutil.DeterministicSine(50, 1000, 1.2, 500)

	whole := NewMeter()
	whole.Update(a)
	whole.Update(b)

	left, right := NewMeter(), NewMeter()
	left.Update(a)
	right.Update(b)
	left.Merge(right)

	got, want := left.Result(), whole.Result()
	if got.Length != want.Length || got.Signals != 2 || got.Clipped != want.Clipped ||
		got.ZeroCrossings != want.ZeroCrossings || got.Peak != want.Peak ||
		math.Abs(got.RMS-want.RMS) > 1e-12 {
		t.Fatalf("merged %+v, want %+v", got, want)
	}
	if got.Clipped == 0 {
		t.Fatal("a 1.2 amplitude sine should clip")
	}
}

func TestClipLevelAndReset(t *testing.T) {
	m := NewMeter(WithClipLevel(0.5))
	m.Update([]float64{0.4, 0.5, -0.7})
	if got := m.Result().Clipped; got != 2 {
		t.Fatalf("Clipped = %d, want 2", got)
	}

	m.Reset()
	m.Update([]float64{0.6})
	if got := m.Result(); got.Length != 1 || got.Clipped != 1 {
		t.Fatalf("after Reset: %+v", got)
	}
}
