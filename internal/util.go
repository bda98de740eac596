package internal

// ReconstructPath rebuilds the path from the cameFrom map, ordered from current
// back to start. Walking stops at start or at the first node without a
// predecessor.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
	start NodeType,
) []NodeType {
	path := []NodeType{current}
	for current != start {
		previousNode, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	return path
}

// Reverse returns a reversed copy of path.
func Reverse[NodeType any](path []NodeType) []NodeType {
	reversed := make([]NodeType, len(path))
	for i, node := range path {
		reversed[len(path)-1-i] = node
	}
	return reversed
}
