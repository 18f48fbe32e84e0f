package wavetable

import "math"

// Sine returns one full sine cycle scaled to MaxVal.
func Sine() Table {
	table := make(Table, WaveLength)
	for x := range table {
		table[x] = roundSample(MaxVal * math.Sin(2*math.Pi*float64(x)/WaveLength))
	}

	return table
}

// Triangle returns a symmetric triangle of the given length. The peak sits
// at length/4.
func Triangle(length int) (Table, error) {
	if length < 0 {
		return nil, &ParamError{Op: "triangle", Param: "length", Value: float64(length), Reason: "must not be negative"}
	}

	return SkewedTriangle(float64(length/4), length)
}

// SkewedTriangle returns a table of exactly length samples made of three
// linear segments: peak samples rising from 0 toward MaxVal, length-2*peak
// samples falling from MaxVal toward MinVal, and peak samples rising from
// MinVal back toward 0.
//
// peak is rounded to the nearest sample. A peak of length/4 gives a
// symmetric triangle and a peak of 0 gives a falling saw. The peak must not
// be negative and must not exceed length/2.
func SkewedTriangle(peak float64, length int) (Table, error) {
	if length < 0 {
		return nil, &ParamError{Op: "triangle", Param: "length", Value: float64(length), Reason: "must not be negative"}
	}

	up, err := roundCount("triangle", "peak", peak)
	if err != nil {
		return nil, err
	}

	if 2*up > length {
		return nil, &ParamError{Op: "triangle", Param: "peak", Value: peak, Reason: "must not exceed half the length"}
	}

	const full = float64(MaxVal - MinVal)

	down := length - 2*up
	table := make(Table, 0, length)

	for i := range up {
		table = append(table, roundSample(MaxVal*float64(i)/float64(up)))
	}

	for i := down; i > 0; i-- {
		table = append(table, roundSample(full*float64(i)/float64(down)+MinVal))
	}

	for i := range up {
		table = append(table, roundSample(MaxVal*float64(i)/float64(up)+MinVal))
	}

	return table, nil
}

// SawSquare returns a falling saw with flat regions: squareStart samples at
// MaxVal, a ramp down, then squareEnd samples at -MaxVal. Both counts are
// rounded to the nearest sample.
//
// With both counts at 0 the result is a pure saw; when they add up to
// WaveLength the ramp vanishes and the result is a square whose pulse width
// is squareStart/WaveLength. The counts must not be negative and their sum
// must not exceed WaveLength.
func SawSquare(squareStart, squareEnd float64) (Table, error) {
	start, err := roundCount("sawsquare", "squareStart", squareStart)
	if err != nil {
		return nil, err
	}

	end, err := roundCount("sawsquare", "squareEnd", squareEnd)
	if err != nil {
		return nil, err
	}

	if start+end > WaveLength {
		return nil, &ParamError{
			Op:     "sawsquare",
			Param:  "squareStart+squareEnd",
			Value:  float64(start + end),
			Reason: "must not exceed the wave length",
		}
	}

	ramp, err := SkewedTriangle(0, WaveLength-start-end)
	if err != nil {
		return nil, err
	}

	table := make(Table, 0, WaveLength)
	for range start {
		table = append(table, MaxVal)
	}

	table = append(table, ramp...)
	for range end {
		table = append(table, -MaxVal)
	}

	return table, nil
}
