package astar

import (
	"context"
	"fmt"
	"math"
	"slices"
)

// Position is a cell coordinate. Two positions are equal when both coordinates
// match, so Position works directly as a map key.
type Position struct {
	X int
	Y int
}

// String formats the position the way the command line prints paths.
func (p Position) String() string {
	return fmt.Sprintf("x=%d, y=%d", p.X, p.Y)
}

// Grid is a Dimension x Dimension search space. Valid coordinates lie in
// [0, Dimension-1] on both axes. Duplicate obstacles are allowed and have no
// extra effect.
//
// A grid built by NewGrid indexes its obstacles once, and Obstacles must not be
// modified afterwards. A Grid literal has no index and rebuilds it per call.
type Grid struct {
	Dimension int
	Start     Position
	End       Position
	Obstacles []Position

	blocked map[Position]struct{}
}

// NewGrid returns a grid with a private copy of obstacles.
func NewGrid(dimension int, start, end Position, obstacles ...Position) Grid {
	return Grid{
		Dimension: dimension,
		Start:     start,
		End:       end,
		Obstacles: slices.Clone(obstacles),
		blocked:   blockedSet(obstacles),
	}
}

func blockedSet(obstacles []Position) map[Position]struct{} {
	blocked := make(map[Position]struct{}, len(obstacles))
	for _, obstacle := range obstacles {
		blocked[obstacle] = struct{}{}
	}
	return blocked
}

// InBounds reports whether p lies inside the grid.
func (g Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Dimension && p.Y >= 0 && p.Y < g.Dimension
}

// IsObstacle reports whether p is listed as an obstacle.
func (g Grid) IsObstacle(p Position) bool {
	_, isBlocked := g.Graph().blocked[p]
	return isBlocked
}

// IsValid reports whether p is inside the grid and not an obstacle.
func (g Grid) IsValid(p Position) bool {
	return g.Graph().Valid(p)
}

// Neighbors returns the valid orthogonal neighbors of p in the fixed order
// north, south, east, west.
func (g Grid) Neighbors(p Position) []Position {
	return g.Graph().validNeighbors(p)
}

// Graph adapts the grid to the generic search engine with unit move costs.
func (g Grid) Graph() GridGraph {
	blocked := g.blocked
	if blocked == nil {
		blocked = blockedSet(g.Obstacles)
	}
	return GridGraph{dimension: g.Dimension, blocked: blocked}
}

// GridGraph is a Graph[Position] over a grid. Obstacle membership is a set
// lookup.
type GridGraph struct {
	dimension int
	blocked   map[Position]struct{}
}

// compass holds the neighbor offsets in expansion order.
var compass = [4]Position{
	{X: 0, Y: 1},  // north
	{X: 0, Y: -1}, // south
	{X: 1, Y: 0},  // east
	{X: -1, Y: 0}, // west
}

// Valid reports whether p is in bounds and not blocked.
func (gg GridGraph) Valid(p Position) bool {
	if p.X < 0 || p.X >= gg.dimension || p.Y < 0 || p.Y >= gg.dimension {
		return false
	}
	_, isBlocked := gg.blocked[p]
	return !isBlocked
}

// endpointsUsable is false when start and end differ and either one is out of
// bounds or blocked. A start equal to end is always its own one-cell path.
func (gg GridGraph) endpointsUsable(start, end Position) bool {
	return start == end || (gg.Valid(start) && gg.Valid(end))
}

func (gg GridGraph) validNeighbors(p Position) []Position {
	valid := make([]Position, 0, len(compass))
	for _, offset := range compass {
		candidate := Position{X: p.X + offset.X, Y: p.Y + offset.Y}
		if gg.Valid(candidate) {
			valid = append(valid, candidate)
		}
	}
	return valid
}

// Neighbors implements Graph.
func (gg GridGraph) Neighbors(p Position) []Neighbor[Position] {
	valid := gg.validNeighbors(p)
	out := make([]Neighbor[Position], 0, len(valid))
	for _, candidate := range valid {
		out = append(out, Neighbor[Position]{ID: candidate, Cost: 1})
	}
	return out
}

// Euclidean is the straight-line distance between two positions. It never
// exceeds the orthogonal move count, so it is admissible on a 4-connected grid.
func Euclidean(from, to Position) float64 {
	dx := from.X - to.X
	dy := from.Y - to.Y
	return math.Sqrt(float64(dx*dx + dy*dy))
}

// FindPath searches grid from its Start to its End.
func FindPath(ctx context.Context, grid Grid, options ...Option) (Result[Position], error) {
	return SearchGrid(ctx, grid, grid.Start, grid.End, options...)
}

// SearchGrid searches grid from start to end. The returned path runs from end
// back to start. When start equals end the path is that single position. A start
// or end cell that is out of bounds or an obstacle is reported as ErrNoPath.
func SearchGrid(ctx context.Context, grid Grid, start, end Position, options ...Option) (Result[Position], error) {
	graph := grid.Graph()
	if !graph.endpointsUsable(start, end) {
		applyOptions(options).Logger.Debug("endpoint not on a free cell", "start", start, "end", end)
		return Result[Position]{}, ErrNoPath
	}
	return Search(ctx, graph, start, end, Euclidean, options...)
}

// NewGridStepper returns a Stepper over grid from its Start to its End. When
// SearchGrid would reject the endpoints, the stepper is already done and Step
// returns ErrNoPath.
func NewGridStepper(ctx context.Context, grid Grid, options ...Option) *Stepper[Position] {
	graph := grid.Graph()
	if !graph.endpointsUsable(grid.Start, grid.End) {
		applyOptions(options).Logger.Debug("endpoint not on a free cell", "start", grid.Start, "end", grid.End)
		return stoppedStepper(ctx, graph, grid.Start, grid.End, Euclidean, ErrNoPath, options...)
	}
	return NewStepper(ctx, graph, grid.Start, grid.End, Euclidean, options...)
}
