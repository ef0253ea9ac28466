package dataset

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	inputPrefix  = "input_"
	targetPrefix = "target_"
	knobSep      = "__"
	wavExt       = ".wav"

	// idDigits keeps lexical and numeric order of ids in agreement for up
	// to a million files.
	idDigits = 6
)

// InputName returns the file name of the input half of pair id.
func InputName(id int) string {
	return fmt.Sprintf("%s%0*d%s", inputPrefix, idDigits, id, wavExt)
}

// TargetName returns the file name of the target half of pair id. The
// physical knob values follow double underscores in declared order:
//
//	target_000042_Compressor_4c__-10.95__3.428__0.005__0.013.wav
func TargetName(id int, effectName string, knobs []float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%0*d_%s", targetPrefix, idDigits, id, effectName)
	for _, k := range knobs {
		b.WriteString(knobSep)
		b.WriteString(strconv.FormatFloat(k, 'g', -1, 64))
	}
	b.WriteString(wavExt)

	return b.String()
}

// ParseKnobString returns the knob values encoded in a target file name,
// everything after the first "__". A trailing "_" before the extension is
// ignored.
func ParseKnobString(name string) ([]float64, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimRight(base, "_")

	parts := strings.Split(base, knobSep)
	if len(parts) < 2 {
		return []float64{}, nil
	}

	knobs := make([]float64, 0, len(parts)-1)
	for _, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: knob %q in %s: %w", p, name, err)
		}
		knobs = append(knobs, v)
	}

	return knobs, nil
}

// pairID returns the id field of an input_ or target_ file name.
func pairID(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, prefix := range []string{inputPrefix, targetPrefix} {
		if rest, ok := strings.CutPrefix(base, prefix); ok {
			id, _, _ := strings.Cut(rest, "_")
			return id
		}
	}

	return ""
}
