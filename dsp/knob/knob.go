package knob

import "fmt"

// Range is the physical [Min, Max] span of one knob.
type Range struct {
	Min, Max float64
}

// Knob is a named control with its physical range.
type Knob struct {
	Name  string
	Range Range
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// ToPhysical maps a normalized value in [-0.5, 0.5] to physical units.
func (r Range) ToPhysical(normalized float64) float64 {
	return r.Min + (normalized+0.5)*r.Span()
}

// ToNormalized maps a physical value to [-0.5, 0.5]. A degenerate range
// (Min == Max) normalizes to 0.
func (r Range) ToNormalized(physical float64) float64 {
	span := r.Span()
	if span == 0 {
		return 0
	}

	return (physical-r.Min)/span - 0.5
}

// ToPhysical maps a normalized vector onto ranges element by element.
func ToPhysical(ranges []Range, normalized []float64) ([]float64, error) {
	if len(ranges) != len(normalized) {
		return nil, fmt.Errorf("%w: got %d values for %d knobs", ErrDimension, len(normalized), len(ranges))
	}

	out := make([]float64, len(ranges))
	for i, r := range ranges {
		out[i] = r.ToPhysical(normalized[i])
	}

	return out, nil
}

// ToNormalized maps a physical vector onto [-0.5, 0.5] element by element.
func ToNormalized(ranges []Range, physical []float64) ([]float64, error) {
	if len(ranges) != len(physical) {
		return nil, fmt.Errorf("%w: got %d values for %d knobs", ErrDimension, len(physical), len(ranges))
	}

	out := make([]float64, len(ranges))
	for i, r := range ranges {
		out[i] = r.ToNormalized(physical[i])
	}

	return out, nil
}

// Ranges extracts the ranges of knobs in order.
func Ranges(knobs []Knob) []Range {
	out := make([]Range, len(knobs))
	for i, k := range knobs {
		out[i] = k.Range
	}

	return out
}

// Names extracts the names of knobs in order.
func Names(knobs []Knob) []string {
	out := make([]string, len(knobs))
	for i, k := range knobs {
		out[i] = k.Name
	}

	return out
}
