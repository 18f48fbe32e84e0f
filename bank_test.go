package wavetable

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestDefaultBankOrder(t *testing.T) {
	bank, err := DefaultBank(context.Background())
	if err != nil {
		t.Fatalf("DefaultBank: %v", err)
	}

	if err := bank.Validate(); err != nil {
		t.Fatal(err)
	}

	tri, _ := Triangle(WaveLength)
	saw, _ := SawSquare(0, 0)
	ss, _ := Supersaw(2, WaveLength/2, 40000)
	half, _ := SawSquare(WaveLength/4, WaveLength/4)
	square, _ := SawSquare(WaveLength/2, WaveLength/2)

	want := Bank{Sine(), tri, saw, ss, half, square, tri}
	if len(bank) != len(want) {
		t.Fatalf("bank has %d tables, want %d", len(bank), len(want))
	}

	for i := range want {
		if !slices.Equal(bank[i], want[i]) {
			t.Errorf("table %d (%s) doesn't match", i, BasicsRecipe()[i].Name)
		}
	}
}

func TestRecipeBuildKeepsOrder(t *testing.T) {
	var recipe Recipe

	for i := range 32 {
		recipe = append(recipe, Step{
			Name: "const",
			Make: func() (Table, error) {
				table := make(Table, WaveLength)
				table[0] = i

				return table, nil
			},
		})
	}

	bank, err := recipe.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for i, table := range bank {
		if table[0] != i {
			t.Fatalf("table %d came from step %d", i, table[0])
		}
	}
}

func TestRecipeBuildErrors(t *testing.T) {
	if _, err := Recipe(nil).Build(context.Background()); !errors.Is(err, ErrEmptyRecipe) {
		t.Fatalf("err=%v, want ErrEmptyRecipe", err)
	}

	bad := append(BasicsRecipe(), Step{
		Name: "broken",
		Make: func() (Table, error) { return Supersaw(1, 0, 0) },
	})

	bank, err := bad.Build(context.Background())
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err=%v, want ErrInvalidParameter", err)
	}

	if bank != nil {
		t.Fatal("a failed build must not return a partial bank")
	}

	short := Recipe{{Name: "short", Make: func() (Table, error) { return Triangle(16) }}}
	if _, err := short.Build(context.Background()); !errors.Is(err, ErrTableLength) {
		t.Fatalf("err=%v, want ErrTableLength", err)
	}
}

func TestRecipeBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := BasicsRecipe().Build(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestBankValidate(t *testing.T) {
	if err := (Bank{Sine(), Table{1}}).Validate(); !errors.Is(err, ErrTableLength) {
		t.Fatalf("err=%v, want ErrTableLength", err)
	}
}
