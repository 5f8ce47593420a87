package genetic

import "image"

// Codec translates between genotype (evolvable) and phenotype (usable) representations
type Codec[G Solution, P any] interface {
	Encode(P) G
	Decode(G) P
}

// GrayCodec maps 8-bit gray images to grids and back
type GrayCodec struct{}

var _ Codec[Grid, *image.Gray] = GrayCodec{}

// Encode copies the image pixels into a grid, honoring Stride and a non-zero Rect origin
func (GrayCodec) Encode(img *image.Gray) Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(g.Pix[y*g.Width:(y+1)*g.Width], row[:g.Width])
	}
	return g
}

// Decode copies the grid into a new image anchored at the origin
func (GrayCodec) Decode(g Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+g.Width], g.Pix[y*g.Width:(y+1)*g.Width])
	}
	return img
}
