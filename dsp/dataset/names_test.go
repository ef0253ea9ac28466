package dataset

import (
	"testing"

	"github.com/jraju9/signaltrain/internal/testutil"
)

func TestTargetNameRoundTrip(t *testing.T) {
	knobs := []float64{-10.95, 3.428, 0.005043, 0.01308}
	name := TargetName(9400, "Compressor_4c", knobs)
	if name != "target_009400_Compressor_4c__-10.95__3.428__0.005043__0.01308.wav" {
		t.Fatalf("TargetName = %q", name)
	}

	got, err := ParseKnobString("/data/train/" + name)
	if err != nil {
		t.Fatalf("ParseKnobString error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, knobs, 0)

	if pairID(name) != pairID(InputName(9400)) {
		t.Fatalf("ids %q and %q differ", pairID(name), pairID(InputName(9400)))
	}
}

func TestParseKnobString(t *testing.T) {
	tests := []struct {
		name string
		want []float64
	}{
		{"target_1_Echo__100__0.5__2.wav", []float64{100, 0.5, 2}},
		{"target_1_Echo__100__0.5_.wav", []float64{100, 0.5}},
		{"target_1_LowPass__1e-05.wav", []float64{1e-05}},
		{"target_1_Generic.wav", []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKnobString(tt.name)
			if err != nil {
				t.Fatalf("ParseKnobString error: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 0)
		})
	}

	if _, err := ParseKnobString("target_1_Echo__abc.wav"); err == nil {
		t.Fatal("expected error for non-numeric knob")
	}
}

func TestInputNameSortsNumerically(t *testing.T) {
	if !(InputName(9) < InputName(10)) {
		t.Fatalf("%q does not sort before %q", InputName(9), InputName(10))
	}
}
