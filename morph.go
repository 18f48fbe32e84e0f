package wavetable

import "fmt"

// Morph blends a and b sample by sample, weighting b by step/steps:
//
//	out[i] = round(a[i]*(1-step/steps) + b[i]*step/steps)
//
// Step 0 returns a copy of a and step == steps returns a copy of b. Both
// tables must have the same length and step must lie in [0, steps].
func Morph(a, b Table, step, steps int) (Table, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}

	if steps <= 0 {
		return nil, &ParamError{Op: "morph", Param: "steps", Value: float64(steps), Reason: "must be positive"}
	}

	if step < 0 || step > steps {
		return nil, &ParamError{Op: "morph", Param: "step", Value: float64(step), Reason: "must lie in [0, steps]"}
	}

	bmul := float64(step) / float64(steps)
	amul := 1 - bmul

	out := make(Table, len(a))
	for i := range a {
		out[i] = roundSample(float64(a[i])*amul + float64(b[i])*bmul)
	}

	return out, nil
}
