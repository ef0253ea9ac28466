package knob_test

import (
	"fmt"

	"github.com/jraju9/signaltrain/dsp/knob"
)

func ExampleIntToKnobs() {
	dice := []knob.Range{{Min: 1, Max: 6}, {Min: 1, Max: 6}, {Min: 1, Max: 6}}
	k, err := knob.IntToKnobs(100, dice, 6)
	if err != nil {
		panic(err)
	}
	fmt.Println(k)
	// Output:
	// [3 5 5]
}

func ExampleRange_ToPhysical() {
	threshold := knob.Range{Min: -30, Max: 0}
	fmt.Println(threshold.ToPhysical(0), threshold.ToNormalized(-30))
	// Output:
	// -15 -0.5
}
