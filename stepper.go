package astar

import (
	"context"
	"maps"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Done      bool
	Found     bool
	Path      []NodeType
	StepIndex int
}

// Stepper runs the same search as Search, one expansion per call to Step.
// A Stepper is not safe for concurrent use.
type Stepper[NodeType comparable] struct {
	ctx     context.Context
	options Options
	state   *searchState[NodeType]

	stepCount int
	done      bool
	found     bool
	err       error
	current   NodeType
	path      []NodeType
}

// NewStepper creates a new stepper positioned before the first expansion.
func NewStepper[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) *Stepper[NodeType] {
	return &Stepper[NodeType]{
		ctx:     contextObject,
		options: applyOptions(options),
		state:   newSearchState(graph, startNode, goalNode, heuristic),
	}
}

// stoppedStepper is already done: every Step returns err and no node is ever
// expanded.
func stoppedStepper[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	err error,
	options ...Option,
) *Stepper[NodeType] {
	return &Stepper[NodeType]{
		ctx:     contextObject,
		options: applyOptions(options),
		state:   emptySearchState(graph, startNode, goalNode, heuristic),
		done:    true,
		err:     err,
	}
}

// Done reports whether the search has finished.
func (s *Stepper[NodeType]) Done() bool { return s.done }

// Err returns the error that ended the search, or nil while it runs and after
// the goal is found.
func (s *Stepper[NodeType]) Err() error { return s.err }

// Step advances the search by one node expansion and returns a snapshot.
// It returns ErrNoPath once the frontier is empty, ErrExpansionLimit when the
// ceiling is reached and ctx.Err() when the context ends, like Search. Once the
// search is done, further calls return the final snapshot and error again.
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if s.done {
		return s.snapshot(), s.err
	}
	if err := s.ctx.Err(); err != nil {
		return s.stop(err)
	}
	if s.state.exhausted() {
		s.options.Logger.Debug("open set exhausted", "expanded", s.state.expandedNodes)
		return s.stop(ErrNoPath)
	}
	if limit := s.options.MaxExpansions; limit > 0 && s.state.expandedNodes >= limit {
		s.options.Logger.Debug("search aborted", "expanded", s.state.expandedNodes)
		return s.stop(ErrExpansionLimit)
	}

	s.stepCount++
	currentItem := s.state.next()
	s.current = currentItem.Node

	if currentItem.Node == s.state.goal {
		s.done = true
		s.found = true
		s.path = s.state.path(currentItem.Node)
		return s.snapshot(), nil
	}

	s.state.relax(currentItem)
	return s.snapshot(), nil
}

// Result returns the outcome once the search is done. Before that, or when the
// goal was not reached, Found is false.
func (s *Stepper[NodeType]) Result() Result[NodeType] {
	result := Result[NodeType]{ExpandedNodes: s.state.expandedNodes, Found: s.found}
	if s.found {
		result.Path = append([]NodeType(nil), s.path...)
		result.TotalCost = s.state.gScore[s.state.goal]
	}
	return result
}

func (s *Stepper[NodeType]) stop(err error) (StepSnapshot[NodeType], error) {
	s.done = true
	s.err = err
	return s.snapshot(), err
}

func (s *Stepper[NodeType]) snapshot() StepSnapshot[NodeType] {
	return StepSnapshot[NodeType]{
		Current:   s.current,
		Open:      s.state.openNodes(),
		Closed:    maps.Clone(s.state.closedSet),
		CameFrom:  maps.Clone(s.state.cameFrom),
		Done:      s.done,
		Found:     s.found,
		Path:      append([]NodeType(nil), s.path...),
		StepIndex: s.stepCount,
	}
}
