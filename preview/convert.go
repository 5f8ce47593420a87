// Package preview converts grayscale grids to terminal cells
package preview

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/grayevo/genetic"
)

// QuadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var QuadrantChars = [16]rune{
	' ', // 0000 - empty
	'▘', // 0001 - upper-left
	'▝', // 0010 - upper-right
	'▀', // 0011 - upper half
	'▖', // 0100 - lower-left
	'▌', // 0101 - left half
	'▞', // 0110 - anti-diagonal
	'▛', // 0111 - UL + UR + LL
	'▗', // 1000 - lower-right
	'▚', // 1001 - diagonal
	'▐', // 1010 - right half
	'▜', // 1011 - UL + UR + LR
	'▄', // 1100 - lower half
	'▙', // 1101 - UL + LL + LR
	'▟', // 1110 - UR + LL + LR
	'█', // 1111 - full block
}

// RenderMode determines the rendering approach
type RenderMode int

const (
	ModeBackgroundOnly RenderMode = iota
	ModeQuadrant
)

// ParseMode accepts "quadrant"/"q" and "background"/"bg"
func ParseMode(name string) (RenderMode, error) {
	switch strings.ToLower(name) {
	case "quadrant", "q":
		return ModeQuadrant, nil
	case "background", "bg":
		return ModeBackgroundOnly, nil
	default:
		return ModeQuadrant, fmt.Errorf("unknown render mode %q (use 'bg' or 'quadrant')", name)
	}
}

// charAspect compensates for terminal cells being about twice as tall as wide
const charAspect = 0.5

// Cell is one terminal cell with gray foreground and background levels
type Cell struct {
	Rune rune
	Fg   uint8
	Bg   uint8
}

// Frame holds the conversion result
type Frame struct {
	Cells  []Cell
	Width  int
	Height int
}

// At returns the cell at column x, row y
func (f *Frame) At(x, y int) Cell {
	return f.Cells[y*f.Width+x]
}

// Convert renders grid into at most maxW x maxH cells
func Convert(grid genetic.Grid, maxW, maxH int, mode RenderMode) *Frame {
	if grid.Width == 0 || grid.Height == 0 || maxW <= 0 || maxH <= 0 {
		return &Frame{}
	}

	outW, outH := Size(grid.Width, grid.Height, maxW, maxH, mode)
	cells := make([]Cell, outW*outH)

	switch mode {
	case ModeQuadrant:
		convertQuadrant(grid, cells, outW, outH)
	default:
		convertBackground(grid, cells, outW, outH)
	}

	return &Frame{Cells: cells, Width: outW, Height: outH}
}

// Size returns output dimensions preserving aspect ratio within maxW x maxH
// Width is one source column per cell (two in quadrant mode); height follows the
// character aspect of 0.5
func Size(srcW, srcH, maxW, maxH int, mode RenderMode) (int, int) {
	outW := srcW
	if mode == ModeQuadrant {
		outW = (srcW + 1) / 2
	}
	outW = min(outW, maxW)

	aspect := float64(srcH) / float64(srcW) * charAspect
	outH := max(1, int(float64(outW)*aspect+0.5))
	if outH > maxH {
		outH = maxH
		outW = max(1, min(outW, int(float64(outH)/aspect+0.5)))
	}
	return outW, outH
}

// convertBackground renders using background levels only (1 cell = 1 sampled region)
func convertBackground(grid genetic.Grid, cells []Cell, outW, outH int) {
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			v := sample(grid, x, y, outW, outH)
			cells[y*outW+x] = Cell{Rune: ' ', Bg: v}
		}
	}
}

// convertQuadrant renders using quadrant characters with fg/bg levels (2x effective resolution)
func convertQuadrant(grid genetic.Grid, cells []Cell, outW, outH int) {
	gridW := outW * 2
	gridH := outH * 2

	// Sample positions: [0]=UL, [1]=UR, [2]=LL, [3]=LR
	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			var pixels [4]uint8
			for i, off := range offsets {
				pixels[i] = sample(grid, x*2+off[0], y*2+off[1], gridW, gridH)
			}

			char, fg, bg := findBestQuadrant(pixels)
			cells[y*outW+x] = Cell{Rune: char, Fg: fg, Bg: bg}
		}
	}
}

// sample reads the grid value at the center of region (x, y) of a w x h partition
func sample(grid genetic.Grid, x, y, w, h int) uint8 {
	sx := min((x*grid.Width+grid.Width/2)/w, grid.Width-1)
	sy := min((y*grid.Height+grid.Height/2)/h, grid.Height-1)
	return grid.At(sx, sy)
}

// findBestQuadrant picks the pattern and fg/bg levels with the least squared error
// Exhaustive over all 16 patterns; the first pattern wins ties
func findBestQuadrant(pixels [4]uint8) (rune, uint8, uint8) {
	bestError := int(^uint(0) >> 1)
	bestPattern := 0
	var bestFg, bestBg uint8

	for pattern := 0; pattern < 16; pattern++ {
		fg, bg, err := patternLevels(pixels, pattern)
		if err < bestError {
			bestError = err
			bestPattern = pattern
			bestFg = fg
			bestBg = bg
		}
	}

	return QuadrantChars[bestPattern], bestFg, bestBg
}

// patternLevels averages each group and returns the total squared error
func patternLevels(pixels [4]uint8, pattern int) (fg, bg uint8, totalError int) {
	var fgSum, fgCount, bgSum, bgCount int

	for i := 0; i < 4; i++ {
		if pattern&(1<<i) != 0 {
			fgSum += int(pixels[i])
			fgCount++
		} else {
			bgSum += int(pixels[i])
			bgCount++
		}
	}

	if fgCount > 0 {
		fg = uint8(fgSum / fgCount)
	}
	if bgCount > 0 {
		bg = uint8(bgSum / bgCount)
	}

	for i := 0; i < 4; i++ {
		target := bg
		if pattern&(1<<i) != 0 {
			target = fg
		}
		d := int(pixels[i]) - int(target)
		totalError += d * d
	}

	return fg, bg, totalError
}
