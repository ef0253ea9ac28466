package core

// Clone returns a copy of src.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Shift returns src moved right by n samples (left for negative n).
// Samples uncovered by the move are zero; nothing wraps around.
func Shift(src []float64, n int) []float64 {
	out := make([]float64, len(src))
	switch {
	case n >= len(src) || -n >= len(src):
		return out
	case n >= 0:
		copy(out[n:], src[:len(src)-n])
	default:
		copy(out, src[-n:])
	}
	return out
}

// Tail returns the last n samples of src, or src itself when it is shorter.
func Tail(src []float64, n int) []float64 {
	if n < 0 || n >= len(src) {
		return src
	}
	return src[len(src)-n:]
}

// ToFloat32 converts src to a new float32 slice.
func ToFloat32(src []float64) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(v)
	}
	return out
}
