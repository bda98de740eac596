// Package astar provides an A* shortest-path search over 2D obstacle grids.
//
// It exposes three entry points:
//
//   - FindPath / SearchGrid: solve a Grid with 4-directional unit-cost moves and a
//     Euclidean heuristic, returning the path from the end cell back to the start.
//   - Search: the generic engine behind FindPath, usable with any Graph.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Searches are single-threaded and own all of their state; nothing is shared between
// calls. Ties between frontier nodes with equal F cost are broken by insertion order,
// so a given grid always yields the same path.
package astar
