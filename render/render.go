// Package render presents search results as text, ASCII maps, JSON and PNG images.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	astar "github.com/pdrpinto/gridastar"
)

// Map cell glyphs.
const (
	GlyphFree     = '.'
	GlyphObstacle = '#'
	GlyphPath     = '*'
	GlyphStart    = 'S'
	GlyphEnd      = 'E'
)

// Text writes one "x=.., y=.." line per position, in path order.
func Text(w io.Writer, path []astar.Position) error {
	bw := bufio.NewWriter(w)
	for _, p := range path {
		if _, err := fmt.Fprintln(bw, p); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Cells classifies every cell of grid as a glyph, indexed [y][x]. Path cells
// override free cells, and the endpoints override everything.
func Cells(grid astar.Grid, path []astar.Position) [][]rune {
	cells := make([][]rune, max(grid.Dimension, 0))
	for y := range cells {
		cells[y] = make([]rune, grid.Dimension)
		for x := range cells[y] {
			cells[y][x] = GlyphFree
		}
	}

	set := func(p astar.Position, glyph rune) {
		if grid.InBounds(p) {
			cells[p.Y][p.X] = glyph
		}
	}
	for _, o := range grid.Obstacles {
		set(o, GlyphObstacle)
	}
	for _, p := range path {
		set(p, GlyphPath)
	}
	set(grid.Start, GlyphStart)
	set(grid.End, GlyphEnd)
	return cells
}

// Map draws grid as ASCII with north up: the row y = Dimension-1 comes first.
func Map(w io.Writer, grid astar.Grid, path []astar.Position) error {
	bw := bufio.NewWriter(w)
	cells := Cells(grid, path)
	for y := len(cells) - 1; y >= 0; y-- {
		if _, err := fmt.Fprintln(bw, string(cells[y])); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type jsonPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Report is the JSON document written for one solved grid.
type Report struct {
	Name     string         `json:"name"`
	Found    bool           `json:"found"`
	Length   int            `json:"length"`
	Cost     float64        `json:"cost"`
	Expanded int            `json:"expanded"`
	Path     []jsonPosition `json:"path"`
	Error    string         `json:"error,omitempty"`
}

// NewReport converts a search outcome into a Report. err may be nil.
func NewReport(name string, result astar.Result[astar.Position], err error) Report {
	report := Report{
		Name:     name,
		Found:    result.Found,
		Cost:     result.TotalCost,
		Expanded: result.ExpandedNodes,
		Path:     make([]jsonPosition, 0, len(result.Path)),
	}
	for _, p := range result.Path {
		report.Path = append(report.Path, jsonPosition{X: p.X, Y: p.Y})
	}
	if len(result.Path) > 0 {
		report.Length = len(result.Path) - 1
	}
	if err != nil {
		report.Error = err.Error()
	}
	return report
}

// JSON writes report as a single indented JSON document.
func JSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
