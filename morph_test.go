package wavetable

import (
	"errors"
	"slices"
	"testing"
)

func TestMorphSelfIsIdentity(t *testing.T) {
	sine := Sine()

	for step := 0; step <= StageSize; step++ {
		out, err := Morph(sine, sine, step, StageSize)
		if err != nil {
			t.Fatalf("Morph step %d: %v", step, err)
		}

		if !slices.Equal(out, sine) {
			t.Fatalf("Morph(a, a, %d, %d) != a", step, StageSize)
		}
	}
}

func TestMorphBoundaries(t *testing.T) {
	sine := Sine()

	saw, err := SawSquare(0, 0)
	if err != nil {
		t.Fatal(err)
	}

	first, err := Morph(sine, saw, 0, 7)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(first, sine) {
		t.Fatal("step 0 should return the first table")
	}

	last, err := Morph(sine, saw, 7, 7)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(last, saw) {
		t.Fatal("step == steps should return the second table")
	}
}

func TestMorphRoundsHalfToEven(t *testing.T) {
	out, err := Morph(Table{0, 1, 10}, Table{1, 2, 21}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	want := Table{0, 2, 16}
	if !slices.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestMorphErrors(t *testing.T) {
	a := Table{1, 2, 3}

	if _, err := Morph(a, Table{1, 2}, 0, 1); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v, want ErrLengthMismatch", err)
	}

	testCases := []struct {
		name        string
		step, steps int
	}{
		{"zero steps", 0, 0},
		{"negative step", -1, 4},
		{"step past steps", 5, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Morph(a, a, tc.step, tc.steps); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err=%v, want ErrInvalidParameter", err)
			}
		})
	}
}
