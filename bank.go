package wavetable

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Step names one generator call of a recipe.
type Step struct {
	Name string
	Make func() (Table, error)
}

// Recipe is an ordered list of steps. The bank it builds keeps that order.
type Recipe []Step

// Build runs every step and returns the tables in recipe order. Steps are
// independent and run concurrently; the first failing step cancels the rest.
// Each table lands at its step's index, so scheduling never changes the bank.
func (r Recipe) Build(ctx context.Context) (Bank, error) {
	if len(r) == 0 {
		return nil, ErrEmptyRecipe
	}

	bank := make(Bank, len(r))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, step := range r {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			table, err := step.Make()
			if err != nil {
				return fmt.Errorf("step %d (%s): %w", i, step.Name, err)
			}

			if len(table) != WaveLength {
				return fmt.Errorf("step %d (%s): %w: got %d samples", i, step.Name, ErrTableLength, len(table))
			}

			bank[i] = table

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bank, nil
}

// BasicsRecipe is the default bank: sine, triangle, saw, supersaw, half
// saw/half square, square, and the triangle again so players can morph from
// the square back to the triangle.
func BasicsRecipe() Recipe {
	return Recipe{
		{Name: "sine", Make: func() (Table, error) { return Sine(), nil }},
		{Name: "triangle", Make: func() (Table, error) { return Triangle(WaveLength) }},
		{Name: "saw", Make: func() (Table, error) { return SawSquare(0, 0) }},
		{Name: "supersaw", Make: func() (Table, error) { return Supersaw(2, WaveLength/2, 40000) }},
		{Name: "sawsquare", Make: func() (Table, error) { return SawSquare(WaveLength/4, WaveLength/4) }},
		{Name: "square", Make: func() (Table, error) { return SawSquare(WaveLength/2, WaveLength/2) }},
		{Name: "triangle", Make: func() (Table, error) { return Triangle(WaveLength) }},
	}
}

// DefaultBank builds BasicsRecipe.
func DefaultBank(ctx context.Context) (Bank, error) {
	return BasicsRecipe().Build(ctx)
}
