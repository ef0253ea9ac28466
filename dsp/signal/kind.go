package signal

import (
	"fmt"
	"strings"
)

// Kind selects a waveform family.
type Kind int

const (
	KindSine Kind = iota
	KindNoisySine
	KindPluck
	KindTriangle
	KindBox
	KindSpikes
	KindNoisyBox
	KindNoisyPluck
	KindWhiteNoise
	KindSuperposition

	numKinds
)

var kindNames = [...]string{
	KindSine:          "sine",
	KindNoisySine:     "noisysine",
	KindPluck:         "pluck",
	KindTriangle:      "triangle",
	KindBox:           "box",
	KindSpikes:        "spikes",
	KindNoisyBox:      "noisybox",
	KindNoisyPluck:    "noisypluck",
	KindWhiteNoise:    "whitenoise",
	KindSuperposition: "superposition",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}

	return out
}

// ParseKind resolves a kind by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("unknown signal kind %q", name)
}
