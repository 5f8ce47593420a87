package fitness

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/grayevo/genetic"
)

func TestAbsDiff_Identity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	target := genetic.UniformGrid(8, 6)(rng)

	if got := AbsDiff(target, target); got != 0 {
		t.Errorf("expected 0 against itself, got %d", got)
	}
}

func TestAbsDiff_KnownValues(t *testing.T) {
	target := genetic.Grid{Width: 2, Height: 2, Pix: []uint8{0, 255, 10, 100}}
	individual := genetic.Grid{Width: 2, Height: 2, Pix: []uint8{255, 0, 20, 90}}

	// 255 + 255 + 10 + 10
	if got := AbsDiff(individual, target); got != 530 {
		t.Errorf("expected 530, got %d", got)
	}
	if got := AbsDiff(target, individual); got != 530 {
		t.Errorf("expected symmetric 530, got %d", got)
	}
}

func TestAbsDiff_NonNegativeAndPure(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	init := genetic.UniformGrid(16, 16)
	target := init(rng)

	for i := 0; i < 50; i++ {
		individual := init(rng)
		first := AbsDiff(individual, target)
		second := AbsDiff(individual, target)
		if first < 0 {
			t.Fatalf("negative score %d", first)
		}
		if first != second {
			t.Fatalf("score changed between calls: %d then %d", first, second)
		}
	}
}

func TestAbsDiff_MaxScore(t *testing.T) {
	black := genetic.NewGrid(3, 3)
	white := genetic.NewGrid(3, 3)
	for i := range white.Pix {
		white.Pix[i] = 255
	}

	if got := AbsDiff(black, white); got != MaxScore(9) {
		t.Errorf("expected %d, got %d", MaxScore(9), got)
	}
}

func TestAbsDiff_DimensionMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on dimension mismatch")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", r)
		}
	}()

	AbsDiff(genetic.NewGrid(2, 3), genetic.NewGrid(3, 2))
}

func TestCheck(t *testing.T) {
	if err := Check(genetic.NewGrid(4, 4), genetic.NewGrid(4, 4)); err != nil {
		t.Errorf("expected nil for equal shapes, got %v", err)
	}

	err := Check(genetic.NewGrid(4, 5), genetic.NewGrid(4, 4))
	var dimErr *DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected *DimensionError, got %v", err)
	}
	if dimErr.Got != [2]int{4, 5} || dimErr.Want != [2]int{4, 4} {
		t.Errorf("unexpected shapes in %v", dimErr)
	}
}

func TestAgainst(t *testing.T) {
	target := genetic.Grid{Width: 1, Height: 2, Pix: []uint8{3, 4}}
	eval := Against(target)

	if got := eval(genetic.Grid{Width: 1, Height: 2, Pix: []uint8{0, 0}}); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}
