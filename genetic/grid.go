package genetic

import "math/rand/v2"

// Grid is a row-major 8-bit intensity raster
// Pix[y*Width+x] holds the intensity at (x, y)
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGrid allocates a zeroed grid
func NewGrid(width, height int) Grid {
	return Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the intensity at (x, y)
func (g Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// Set writes the intensity at (x, y)
func (g Grid) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// Len returns the number of cells
func (g Grid) Len() int {
	return len(g.Pix)
}

// SameShape reports whether both grids have identical dimensions
func (g Grid) SameShape(o Grid) bool {
	return g.Width == o.Width && g.Height == o.Height && len(g.Pix) == len(o.Pix)
}

// Clone returns a grid with its own storage
func (g Grid) Clone() Grid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

// sharesStorage reports whether both grids point at the same backing array
func (g Grid) sharesStorage(o Grid) bool {
	if len(g.Pix) == 0 || len(o.Pix) == 0 {
		return len(g.Pix) == len(o.Pix)
	}
	return &g.Pix[0] == &o.Pix[0]
}

// UniformGrid returns an initializer drawing every cell uniformly from [0,255]
func UniformGrid(width, height int) InitializerFunc[Grid] {
	return func(rng *rand.Rand) Grid {
		g := NewGrid(width, height)
		for i := range g.Pix {
			g.Pix[i] = uint8(rng.IntN(256))
		}
		return g
	}
}
