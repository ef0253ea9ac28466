package dataset

import (
	"errors"
	"testing"

	"github.com/jraju9/signaltrain/internal/testutil"
)

func arange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestChopNStack(t *testing.T) {
	stack, err := ChopNStack(arange(10), 4)
	if err != nil {
		t.Fatalf("ChopNStack error: %v", err)
	}
	if len(stack) != 3 {
		t.Fatalf("rows = %d, want 3", len(stack))
	}
	testutil.RequireSliceNearlyEqual(t, stack[2], []float64{8, 9, 0, 0}, 0)

	testutil.RequireSliceNearlyEqual(t, InvChopNStack(stack, 10), arange(10), 0)
	if got := InvChopNStack(stack, -1); len(got) != 12 {
		t.Fatalf("len = %d, want 12", len(got))
	}
}

func TestChopNStackRowsDoNotOverlap(t *testing.T) {
	stack, _ := ChopNStack(arange(8), 4)
	stack[0] = append(stack[0], 99)
	if stack[1][0] != 4 {
		t.Fatal("appending to row 0 overwrote row 1")
	}
}

func TestChopNStackSizeError(t *testing.T) {
	if _, err := ChopNStack(arange(4), 0); !errors.Is(err, ErrChunkSize) {
		t.Fatalf("err = %v, want ErrChunkSize", err)
	}
}

func TestSlidingWindow(t *testing.T) {
	windows, err := SlidingWindow(arange(10), 5, 2)
	if err != nil {
		t.Fatalf("SlidingWindow error: %v", err)
	}

	want := [][]float64{{0, 1, 2, 3, 4}, {3, 4, 5, 6, 7}, {6, 7, 8, 9, 0}}
	if len(windows) != len(want) {
		t.Fatalf("windows = %d, want %d", len(windows), len(want))
	}
	for i := range want {
		testutil.RequireSliceNearlyEqual(t, windows[i], want[i], 0)
	}

	joined, err := UndoSlidingWindow(windows, 2)
	if err != nil {
		t.Fatalf("UndoSlidingWindow error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, joined, append(arange(10), 0), 0)
}

func TestSlidingWindowNoOverlap(t *testing.T) {
	windows, err := SlidingWindow(arange(6), 3, 0)
	if err != nil {
		t.Fatalf("SlidingWindow error: %v", err)
	}
	joined, err := UndoSlidingWindow(windows, 0)
	if err != nil {
		t.Fatalf("UndoSlidingWindow error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, joined, arange(6), 0)
}

func TestSlidingWindowErrors(t *testing.T) {
	tests := []struct {
		name          string
		n, size, over int
	}{
		{"larger than signal", 4, 5, 0},
		{"zero size", 4, 0, 0},
		{"overlap equals size", 10, 3, 3},
		{"negative overlap", 10, 3, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SlidingWindow(arange(tt.n), tt.size, tt.over); !errors.Is(err, ErrChunkSize) {
				t.Fatalf("err = %v, want ErrChunkSize", err)
			}
		})
	}
}

func TestUndoSlidingWindowRejectsOverlap(t *testing.T) {
	windows := [][]float64{{0, 1, 2}, {2, 3, 4}}

	tests := []struct {
		name    string
		windows [][]float64
		overlap int
	}{
		{"negative", windows, -1},
		{"equals window", windows, 3},
		{"exceeds window", windows, 7},
		{"exceeds short last window", [][]float64{{0, 1, 2}, {2}}, 1},
		{"negative without windows", nil, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UndoSlidingWindow(tt.windows, tt.overlap); !errors.Is(err, ErrChunkSize) {
				t.Fatalf("err = %v, want ErrChunkSize", err)
			}
		})
	}

	out, err := UndoSlidingWindow(nil, 0)
	if err != nil || len(out) != 0 {
		t.Fatalf("UndoSlidingWindow(nil) = %v, %v", out, err)
	}
}
