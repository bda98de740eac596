// Package tui is a terminal viewer that steps a grid search one expansion at a time.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/render"
)

var (
	styleDefault  = tcell.StyleDefault
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOpen     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleClosed   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEndpoint = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Cell glyphs for search state. Obstacles, path and endpoints use render's glyphs.
const (
	glyphOpen   = 'o'
	glyphClosed = '+'
)

// Viewer draws a grid and the state of a Stepper on a tcell screen.
type Viewer struct {
	screen  tcell.Screen
	grid    astar.Grid
	stepper *astar.Stepper[astar.Position]
	last    astar.StepSnapshot[astar.Position]
	err     error
}

// New returns a viewer for stepper over grid. The screen must already be
// initialized.
func New(screen tcell.Screen, grid astar.Grid, stepper *astar.Stepper[astar.Position]) *Viewer {
	return &Viewer{screen: screen, grid: grid, stepper: stepper, err: stepper.Err()}
}

// Run processes events until the user quits or the screen is finalized.
func (v *Viewer) Run() error {
	v.Draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
			v.Draw()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
			v.Draw()
		}
	}
}

// HandleKey applies one key press and reports whether the viewer should exit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		v.step()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case ' ', 'n':
		v.step()
	case 'r':
		for !v.stepper.Done() {
			v.step()
		}
	}
	return false
}

func (v *Viewer) step() {
	if v.stepper.Done() {
		return
	}
	v.last, v.err = v.stepper.Step()
}

// Draw renders the grid, north up, followed by a status line.
func (v *Viewer) Draw() {
	v.screen.Clear()

	onPath := make(map[astar.Position]bool, len(v.last.Path))
	for _, p := range v.last.Path {
		onPath[p] = true
	}

	cells := render.Cells(v.grid, nil)
	for y, row := range cells {
		screenY := v.grid.Dimension - 1 - y
		for x, glyph := range row {
			p := astar.Position{X: x, Y: y}
			shown, style := v.cell(p, glyph, onPath[p])
			v.screen.SetContent(x, screenY, shown, nil, style)
		}
	}

	v.drawText(0, v.grid.Dimension+1, v.status())
	v.drawText(0, v.grid.Dimension+2, "[space] step  [r] run  [q] quit")
	v.screen.Show()
}

func (v *Viewer) cell(p astar.Position, glyph rune, onPath bool) (rune, tcell.Style) {
	switch {
	case glyph == render.GlyphStart || glyph == render.GlyphEnd:
		return glyph, styleEndpoint
	case glyph == render.GlyphObstacle:
		return glyph, styleObstacle
	case onPath:
		return render.GlyphPath, stylePath
	case v.last.Open[p]:
		return glyphOpen, styleOpen
	case v.last.Closed[p]:
		return glyphClosed, styleClosed
	default:
		return glyph, styleDefault
	}
}

func (v *Viewer) status() string {
	switch {
	case v.err != nil:
		return fmt.Sprintf("step %d: %v", v.last.StepIndex, v.err)
	case v.last.Found:
		return fmt.Sprintf("step %d: path found, %d moves", v.last.StepIndex, len(v.last.Path)-1)
	default:
		return fmt.Sprintf("step %d: open %d closed %d", v.last.StepIndex, len(v.last.Open), len(v.last.Closed))
	}
}

func (v *Viewer) drawText(x, y int, text string) {
	for i, r := range []rune(text) {
		v.screen.SetContent(x+i, y, r, nil, styleDefault)
	}
}
