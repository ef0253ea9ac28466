package interp

// Linear blends a and b: (1-frac)*a + frac*b.
func Linear(a, b, frac float64) float64 {
	return (1-frac)*a + frac*b
}
