package astar

import (
	"container/heap"

	"github.com/pdrpinto/gridastar/internal"
)

// searchState holds everything one search owns: the frontier, the closed set,
// the G scores and the predecessor map. F costs live on the frontier items.
// It is created fresh per search and shared by Search and Stepper so both
// expand nodes identically.
type searchState[NodeType comparable] struct {
	graph     Graph[NodeType]
	start     NodeType
	goal      NodeType
	heuristic Heuristic[NodeType]

	openSet    PriorityQueue[NodeType]
	openSetMap map[NodeType]*PriorityQueueItem[NodeType]
	closedSet  map[NodeType]bool
	gScore     map[NodeType]float64
	cameFrom   map[NodeType]NodeType

	nextSequence  int
	expandedNodes int
}

func newSearchState[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
) *searchState[NodeType] {
	state := emptySearchState(graph, startNode, goalNode, heuristic)
	state.open(startNode, 0, heuristic(startNode, goalNode))
	return state
}

// emptySearchState has nothing on the frontier, so it is exhausted from the
// start.
func emptySearchState[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
) *searchState[NodeType] {
	state := &searchState[NodeType]{
		graph:      graph,
		start:      startNode,
		goal:       goalNode,
		heuristic:  heuristic,
		openSet:    make(PriorityQueue[NodeType], 0),
		openSetMap: make(map[NodeType]*PriorityQueueItem[NodeType]),
		closedSet:  make(map[NodeType]bool),
		gScore:     make(map[NodeType]float64),
		cameFrom:   make(map[NodeType]NodeType),
	}
	heap.Init(&state.openSet)
	return state
}

func (s *searchState[NodeType]) exhausted() bool {
	return s.openSet.Len() == 0
}

// open adds a node that has never been on the frontier.
func (s *searchState[NodeType]) open(node NodeType, gScore, fCost float64) {
	item := &PriorityQueueItem[NodeType]{
		Node:     node,
		GScore:   gScore,
		FCost:    fCost,
		Sequence: s.nextSequence,
	}
	s.nextSequence++
	heap.Push(&s.openSet, item)
	s.openSetMap[node] = item
	s.gScore[node] = gScore
}

// next moves the frontier node with the lowest F cost into the closed set and
// returns it.
func (s *searchState[NodeType]) next() *PriorityQueueItem[NodeType] {
	currentItem := heap.Pop(&s.openSet).(*PriorityQueueItem[NodeType])
	delete(s.openSetMap, currentItem.Node)
	s.closedSet[currentItem.Node] = true
	s.expandedNodes++
	return currentItem
}

// relax scores every neighbor of current. A neighbor already on the frontier is
// only updated when the new G score is strictly lower, so cameFrom never forms
// a cycle.
func (s *searchState[NodeType]) relax(currentItem *PriorityQueueItem[NodeType]) {
	for _, neighbor := range s.graph.Neighbors(currentItem.Node) {
		if s.closedSet[neighbor.ID] {
			continue
		}
		tentativeG := currentItem.GScore + neighbor.Cost
		fCost := tentativeG + s.heuristic(neighbor.ID, s.goal)

		item, inOpen := s.openSetMap[neighbor.ID]
		if !inOpen {
			s.open(neighbor.ID, tentativeG, fCost)
			s.cameFrom[neighbor.ID] = currentItem.Node
			continue
		}
		if tentativeG >= item.GScore {
			continue
		}
		item.GScore = tentativeG
		item.FCost = fCost
		heap.Fix(&s.openSet, item.IndexInQueue)
		s.gScore[neighbor.ID] = tentativeG
		s.cameFrom[neighbor.ID] = currentItem.Node
	}
}

func (s *searchState[NodeType]) path(goalNode NodeType) []NodeType {
	return internal.ReconstructPath(s.cameFrom, goalNode, s.start)
}

func (s *searchState[NodeType]) openNodes() map[NodeType]bool {
	m := make(map[NodeType]bool, len(s.openSetMap))
	for k := range s.openSetMap {
		m[k] = true
	}
	return m
}
