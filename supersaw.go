package wavetable

import "math"

// Supersaw returns a saw built from teeth ramps sharing one slope. The first
// tooth is firstLength samples long and starts at MaxVal; every following
// tooth is about (WaveLength-firstLength)/(teeth-1) samples long and sits
// toothHeight higher than the previous one. The slope is chosen so the
// staggered teeth span the full range:
//
//	slope = (MaxVal - MinVal + (teeth-1)*toothHeight) / WaveLength
//
// Samples lost to rounding the tooth lengths are padded with MinVal.
// Large tooth heights overshoot the 16-bit range; Quantize clamps them.
//
// teeth must lie in [2, WaveLength+1], so no tooth is shorter than a sample
// when firstLength is 0, and firstLength must lie in [0, WaveLength].
func Supersaw(teeth, firstLength int, toothHeight float64) (Table, error) {
	if teeth < 2 {
		return nil, &ParamError{Op: "supersaw", Param: "teeth", Value: float64(teeth), Reason: "must be at least 2"}
	}

	if teeth-1 > WaveLength {
		return nil, &ParamError{Op: "supersaw", Param: "teeth", Value: float64(teeth), Reason: "must not exceed the wave length plus one"}
	}

	if firstLength < 0 || firstLength > WaveLength {
		return nil, &ParamError{Op: "supersaw", Param: "firstLength", Value: float64(firstLength), Reason: "must lie within the wave length"}
	}

	if math.IsNaN(toothHeight) || math.IsInf(toothHeight, 0) {
		return nil, &ParamError{Op: "supersaw", Param: "toothHeight", Value: toothHeight, Reason: "must be finite"}
	}

	toothLength := float64(WaveLength-firstLength) / float64(teeth-1)
	slope := (float64(MaxVal-MinVal) + float64(teeth-1)*toothHeight) / WaveLength

	table := make(Table, 0, WaveLength)
	for x := range firstLength {
		table = append(table, roundSample(MaxVal-float64(x)*slope))
	}

	for r := 1; r < teeth && len(table) < WaveLength; r++ {
		pos := len(table)
		offset := toothHeight * float64(r)

		for x := pos; x < int(float64(pos)+toothLength); x++ {
			table = append(table, roundSample(MaxVal-float64(x)*slope+offset))
		}
	}

	for len(table) < WaveLength {
		table = append(table, MinVal)
	}

	return table[:WaveLength], nil
}
