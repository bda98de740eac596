package astar

import "errors"

var (
	// ErrNoPath is returned when the open set is exhausted before the goal is reached.
	ErrNoPath = errors.New("no path found")

	// ErrExpansionLimit is returned when a search exceeds the ceiling set by WithMaxExpansions.
	ErrExpansionLimit = errors.New("expansion limit exceeded")
)
