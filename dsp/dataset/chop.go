package dataset

import "fmt"

// ChopNStack cuts sig into rows of size samples. The last row is
// zero-padded.
func ChopNStack(sig []float64, size int) ([][]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chop size must be > 0: %d", ErrChunkSize, size)
	}

	rows := (len(sig) + size - 1) / size
	flat := make([]float64, rows*size)
	copy(flat, sig)

	stack := make([][]float64, rows)
	for i := range stack {
		stack[i] = flat[i*size : (i+1)*size : (i+1)*size]
	}

	return stack, nil
}

// InvChopNStack concatenates the rows of stack and truncates the result to
// origLen samples. A negative origLen keeps everything.
func InvChopNStack(stack [][]float64, origLen int) []float64 {
	total := 0
	for _, row := range stack {
		total += len(row)
	}

	out := make([]float64, 0, total)
	for _, row := range stack {
		out = append(out, row...)
	}

	if origLen >= 0 && origLen < len(out) {
		out = out[:origLen]
	}

	return out
}

// SlidingWindow splits x into windows of size samples where consecutive
// windows share overlap samples. x is zero-padded at the end so the windows
// cover it evenly.
//
//	SlidingWindow([0..9], 5, 2) = [[0 1 2 3 4] [3 4 5 6 7] [6 7 8 9 0]]
func SlidingWindow(x []float64, size, overlap int) ([][]float64, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: window size %d with overlap %d", ErrChunkSize, size, overlap)
	}

	if size > len(x) {
		return nil, fmt.Errorf("%w: window size %d exceeds signal length %d", ErrChunkSize, size, len(x))
	}

	step := size - overlap
	padded := len(x)
	if rem := (len(x) - size) % step; rem != 0 {
		padded += step - rem
	}

	buf := make([]float64, padded)
	copy(buf, x)

	n := (padded-size)/step + 1
	windows := make([][]float64, n)
	for i := range windows {
		windows[i] = buf[i*step : i*step+size : i*step+size]
	}

	return windows, nil
}

// UndoSlidingWindow reassembles windows produced by SlidingWindow. Padding
// added by SlidingWindow is kept. overlap must be >= 0 and shorter than
// every window.
func UndoSlidingWindow(windows [][]float64, overlap int) ([]float64, error) {
	if overlap < 0 {
		return nil, fmt.Errorf("%w: negative overlap %d", ErrChunkSize, overlap)
	}

	for i, w := range windows {
		if overlap >= len(w) {
			return nil, fmt.Errorf("%w: overlap %d not shorter than window %d of size %d", ErrChunkSize, overlap, i, len(w))
		}
	}

	if len(windows) == 0 {
		return []float64{}, nil
	}

	out := make([]float64, 0, overlap+len(windows)*(len(windows[0])-overlap))
	out = append(out, windows[0][:overlap]...)
	for _, w := range windows {
		out = append(out, w[overlap:]...)
	}

	return out, nil
}
