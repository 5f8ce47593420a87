// Package imageio reads evolution targets and writes evolved grids as images
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/grayevo/genetic"
)

// ErrImageLoad wraps every failure to produce a target grid
var ErrImageLoad = errors.New("image load failed")

// Load decodes the image at path into a grayscale grid
// When maxSide > 0 and the longer side exceeds it, the image is scaled down keeping aspect ratio
func Load(path string, maxSide int) (genetic.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return genetic.Grid{}, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return genetic.Grid{}, fmt.Errorf("%w: decode %s: %w", ErrImageLoad, path, err)
	}

	b := img.Bounds()
	if b.Empty() {
		return genetic.Grid{}, fmt.Errorf("%w: %s (%s) has no pixels", ErrImageLoad, path, format)
	}

	return genetic.GrayCodec{}.Encode(ToGray(img, maxSide)), nil
}

// ToGray converts img to 8-bit gray, downscaling first when it is larger than maxSide
func ToGray(img image.Image, maxSide int) *image.Gray {
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), maxSide)

	if w != b.Dx() || h != b.Dy() {
		dst := image.NewGray(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}

	if g, ok := img.(*image.Gray); ok {
		return g
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetGray(x, y, color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray))
		}
	}
	return dst
}

// Fit returns dimensions whose longer side is at most maxSide, never below one pixel
func Fit(w, h, maxSide int) (int, int) {
	longest := max(w, h)
	if maxSide <= 0 || longest <= maxSide {
		return w, h
	}
	scale := float64(maxSide) / float64(longest)
	return max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5))
}

// SavePNG writes grid as a grayscale PNG, creating parent directories
func SavePNG(grid genetic.Grid, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, genetic.GrayCodec{}.Decode(grid)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
