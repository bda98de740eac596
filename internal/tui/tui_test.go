package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	astar "github.com/pdrpinto/gridastar"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(40, 8)
	t.Cleanup(screen.Fini)
	return screen
}

func line(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		if runes := cells[y*width+x].Runes; len(runes) > 0 {
			b.WriteRune(runes[0])
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func testGrid() astar.Grid {
	return astar.NewGrid(3, astar.Position{X: 0, Y: 0}, astar.Position{X: 2, Y: 0},
		astar.Position{X: 1, Y: 0}, astar.Position{X: 1, Y: 1})
}

func TestViewerStep(t *testing.T) {
	screen := newScreen(t)
	grid := testGrid()
	viewer := New(screen, grid, astar.NewGridStepper(context.Background(), grid))

	viewer.Draw()
	if got := line(screen, 2); got != "S#E" {
		t.Fatalf("bottom row = %q, want %q", got, "S#E")
	}
	if got := line(screen, 4); got != "step 0: open 0 closed 0" {
		t.Fatalf("status = %q", got)
	}

	if quit := viewer.HandleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)); quit {
		t.Fatal("space should not quit")
	}
	viewer.Draw()
	if got := line(screen, 1); got != "o#." {
		t.Fatalf("middle row = %q, want %q", got, "o#.")
	}
	if got := line(screen, 4); got != "step 1: open 1 closed 1" {
		t.Fatalf("status = %q", got)
	}
}

func TestViewerRun(t *testing.T) {
	screen := newScreen(t)
	grid := testGrid()
	viewer := New(screen, grid, astar.NewGridStepper(context.Background(), grid))

	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := viewer.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"***", "*#*", "S#E"}
	for y, row := range want {
		if got := line(screen, y); got != row {
			t.Fatalf("row %d = %q, want %q", y, got, row)
		}
	}
	if got := line(screen, 4); !strings.Contains(got, "path found, 6 moves") {
		t.Fatalf("status = %q, want path found", got)
	}
}

func TestViewerUnreachable(t *testing.T) {
	screen := newScreen(t)
	grid := astar.NewGrid(3, astar.Position{X: 0, Y: 0}, astar.Position{X: 2, Y: 2},
		astar.Position{X: 2, Y: 1}, astar.Position{X: 1, Y: 2})
	viewer := New(screen, grid, astar.NewGridStepper(context.Background(), grid))

	viewer.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	viewer.Draw()
	if got := line(screen, 4); !strings.HasSuffix(got, "no path found") {
		t.Fatalf("status = %q, want no path", got)
	}
	if quit := viewer.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); !quit {
		t.Fatal("escape should quit")
	}
}

func TestViewerBlockedStart(t *testing.T) {
	screen := newScreen(t)
	grid := astar.NewGrid(3, astar.Position{X: 1, Y: 0}, astar.Position{X: 2, Y: 2}, astar.Position{X: 1, Y: 0})
	viewer := New(screen, grid, astar.NewGridStepper(context.Background(), grid))

	viewer.Draw()
	if got := line(screen, 4); got != "step 0: no path found" {
		t.Fatalf("status = %q, want no path before any step", got)
	}
	viewer.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	viewer.Draw()
	if got := line(screen, 4); got != "step 0: no path found" {
		t.Fatalf("status after run = %q", got)
	}
}
