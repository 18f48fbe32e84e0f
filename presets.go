package wavetable

import (
	"fmt"
	"maps"
	"slices"
)

var presets = map[string]func() Recipe{
	"basics":           BasicsRecipe,
	"sine-to-triangle": SineToTriangleRecipe,
	"skewed":           SkewedRecipe,
	"saw-to-square":    SawToSquareRecipe,
	"pulse":            PulseRecipe,
}

// Preset returns the recipe registered under name.
func Preset(name string) (Recipe, error) {
	newRecipe, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return newRecipe(), nil
}

// PresetNames lists the registered presets in lexical order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}

// SineToTriangleRecipe morphs a sine into a triangle over StageSize tables.
func SineToTriangleRecipe() Recipe {
	recipe := make(Recipe, 0, StageSize)

	for x := range StageSize {
		recipe = append(recipe, Step{
			Name: fmt.Sprintf("sine-to-triangle-%d", x),
			Make: func() (Table, error) {
				triangle, err := Triangle(WaveLength)
				if err != nil {
					return nil, err
				}

				return Morph(Sine(), triangle, x, StageSize)
			},
		})
	}

	return recipe
}

// SkewedRecipe holds a single triangle skewed halfway toward a saw.
func SkewedRecipe() Recipe {
	return Recipe{
		{Name: "skewed-triangle", Make: func() (Table, error) { return SkewedTriangle(WaveLength/8, WaveLength) }},
	}
}

// SawToSquareRecipe grows both flat regions of a saw by StepSize per table,
// ending on a pure square.
func SawToSquareRecipe() Recipe {
	recipe := make(Recipe, 0, StageSize)

	for x := 1; x <= StageSize; x++ {
		square := float64(x) * StepSize

		recipe = append(recipe, Step{
			Name: fmt.Sprintf("saw-to-square-%d", x),
			Make: func() (Table, error) { return SawSquare(square, square) },
		})
	}

	return recipe
}

// PulseRecipe narrows the pulse width of a square over StageSize tables.
func PulseRecipe() Recipe {
	recipe := make(Recipe, 0, StageSize)

	for x := range StageSize {
		square := float64(StageSize-x) * WaveLength / (2 * StageSize)

		recipe = append(recipe, Step{
			Name: fmt.Sprintf("pulse-%d", x),
			Make: func() (Table, error) { return SawSquare(square, WaveLength-square) },
		})
	}

	return recipe
}
