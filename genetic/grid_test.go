package genetic

import (
	"math/rand/v2"
	"testing"
)

func TestGrid_AtSet(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(2, 1, 42)

	if g.At(2, 1) != 42 {
		t.Errorf("expected 42, got %d", g.At(2, 1))
	}
	if g.Pix[1*3+2] != 42 {
		t.Error("expected row-major layout")
	}
	if g.Len() != 6 {
		t.Errorf("expected 6 cells, got %d", g.Len())
	}
}

func TestGrid_CloneOwnsStorage(t *testing.T) {
	g := NewGrid(2, 2)
	c := g.Clone()
	c.Pix[0] = 9

	if g.Pix[0] != 0 {
		t.Error("clone shares storage with source")
	}
	if g.sharesStorage(c) {
		t.Error("sharesStorage reported true for a clone")
	}
	if !g.sharesStorage(g) {
		t.Error("sharesStorage reported false for the same grid")
	}
}

func TestGrid_SameShape(t *testing.T) {
	if !NewGrid(2, 3).SameShape(NewGrid(2, 3)) {
		t.Error("expected equal shapes")
	}
	if NewGrid(2, 3).SameShape(NewGrid(3, 2)) {
		t.Error("transposed shapes reported equal")
	}
}

func TestUniformGrid_ShapeAndSpread(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	g := UniformGrid(32, 32)(rng)

	if g.Width != 32 || g.Height != 32 || g.Len() != 1024 {
		t.Fatalf("unexpected shape %dx%d (%d)", g.Width, g.Height, g.Len())
	}

	seen := make(map[uint8]bool)
	for _, v := range g.Pix {
		seen[v] = true
	}
	// 1024 uniform draws over 256 values cover well over half of them
	if len(seen) < 128 {
		t.Errorf("expected a spread of values, saw only %d distinct", len(seen))
	}
}
