package render

import (
	"errors"
	"io"

	"github.com/fogleman/gg"

	astar "github.com/pdrpinto/gridastar"
)

// Palette colors as RGB in [0, 1].
var (
	colorFree     = [3]float64{1, 1, 1}
	colorObstacle = [3]float64{0.2, 0.2, 0.2}
	colorPath     = [3]float64{0.3, 0.6, 1}
	colorStart    = [3]float64{0.2, 0.8, 0.2}
	colorEnd      = [3]float64{0.9, 0.2, 0.2}
)

var glyphColors = map[rune][3]float64{
	GlyphFree:     colorFree,
	GlyphObstacle: colorObstacle,
	GlyphPath:     colorPath,
	GlyphStart:    colorStart,
	GlyphEnd:      colorEnd,
}

// PNG draws grid and path as a PNG image with cellSize pixels per cell, north up.
func PNG(w io.Writer, grid astar.Grid, path []astar.Position, cellSize int) error {
	if grid.Dimension <= 0 || cellSize <= 0 {
		return errors.New("render: png needs a positive dimension and cell size")
	}

	side := grid.Dimension * cellSize
	dc := gg.NewContext(side, side)
	size := float64(cellSize)

	cells := Cells(grid, path)
	for y, row := range cells {
		// Image rows grow downwards, grid rows grow northwards.
		top := float64(grid.Dimension-1-y) * size
		for x, glyph := range row {
			c := glyphColors[glyph]
			dc.SetRGB(c[0], c[1], c[2])
			dc.DrawRectangle(float64(x)*size, top, size, size)
			dc.Fill()
		}
	}

	if cellSize >= 4 {
		dc.SetRGB(0.85, 0.85, 0.85)
		dc.SetLineWidth(1)
		for i := 0; i <= grid.Dimension; i++ {
			offset := float64(i) * size
			dc.DrawLine(offset, 0, offset, float64(side))
			dc.DrawLine(0, offset, float64(side), offset)
		}
		dc.Stroke()
	}

	return dc.EncodePNG(w)
}
