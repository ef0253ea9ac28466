package knob

import (
	"fmt"
	"math"
)

// GridSize returns settingsPer^numKnobs, the number of points in a uniform
// knob grid. It returns -1 when the count overflows int.
func GridSize(numKnobs, settingsPer int) int {
	if numKnobs < 0 || settingsPer < 1 {
		return 0
	}

	size := 1
	for range numKnobs {
		if size > math.MaxInt/settingsPer {
			return -1
		}

		size *= settingsPer
	}

	return size
}

// IntToKnobs maps index onto one point of a grid with settingsPer evenly
// spaced settings per knob, endpoints included. The index is read as a
// mixed-radix number whose last digit drives the last knob, so the last
// knob varies fastest.
func IntToKnobs(index int, ranges []Range, settingsPer int) ([]float64, error) {
	if settingsPer < 2 {
		return nil, fmt.Errorf("settings per knob must be >= 2: %d", settingsPer)
	}

	size := GridSize(len(ranges), settingsPer)
	if index < 0 || (size >= 0 && index >= size) {
		return nil, fmt.Errorf("%w: index %d, grid size %d", ErrIndexRange, index, size)
	}

	out := make([]float64, len(ranges))
	for k := len(ranges) - 1; k >= 0; k-- {
		setting := index % settingsPer
		index /= settingsPer

		r := ranges[k]
		step := r.Span() / float64(settingsPer-1)
		out[k] = r.Min + step*float64(setting)
	}

	return out, nil
}
