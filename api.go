package astar

import (
	"context"
	"log/slog"

	"github.com/pdrpinto/gridastar/internal"
)

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// Result contains the outcome of a search.
//
// Path runs from the goal back to the start, both inclusive. When Found is
// false the goal could not be reached and Path is nil.
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// Forward returns the path ordered from start to goal.
func (r Result[NodeType]) Forward() []NodeType {
	return internal.Reverse(r.Path)
}

// Options defines parameters for the search.
type Options struct {
	// MaxExpansions bounds the number of nodes a search may expand. Zero means
	// no limit.
	MaxExpansions int
	Logger        *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxExpansions stops a search with ErrExpansionLimit after n expansions
// without reaching the goal, even when the next node would be the goal.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return searchOptions
}

// Search executes the A* search algorithm.
//
// It returns ErrNoPath when the open set runs empty, ErrExpansionLimit when the
// configured ceiling is exceeded, and ctx.Err() when the context ends first.
func Search[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {

	// --- Apply options ---
	searchOptions := applyOptions(options)
	logger := searchOptions.Logger

	// --- Initialize state ---
	state := newSearchState(graph, startNode, goalNode, heuristic)
	logger.Debug("search started", "start", startNode, "goal", goalNode)

	// --- Main loop ---
	for !state.exhausted() {
		if err := contextObject.Err(); err != nil {
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, err
		}
		if searchOptions.MaxExpansions > 0 && state.expandedNodes >= searchOptions.MaxExpansions {
			logger.Debug("search aborted", "expanded", state.expandedNodes)
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, ErrExpansionLimit
		}

		currentItem := state.next()

		// Goal check
		if currentItem.Node == goalNode {
			path := state.path(currentItem.Node)
			logger.Debug("search finished", "expanded", state.expandedNodes, "length", len(path))
			return Result[NodeType]{
				Path:          path,
				TotalCost:     currentItem.GScore,
				ExpandedNodes: state.expandedNodes,
				Found:         true,
			}, nil
		}

		state.relax(currentItem)
	}

	logger.Debug("open set exhausted", "expanded", state.expandedNodes)
	return Result[NodeType]{
		Path:          nil,
		TotalCost:     0,
		ExpandedNodes: state.expandedNodes,
		Found:         false,
	}, ErrNoPath
}
