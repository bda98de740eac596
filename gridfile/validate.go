package gridfile

import (
	"errors"
	"fmt"

	astar "github.com/pdrpinto/gridastar"
)

// ErrInvalid wraps every problem reported by Validate.
var ErrInvalid = errors.New("invalid grid")

// Validate reports layout problems a search would silently treat as
// unreachable: a non-positive dimension, and endpoints that are out of bounds
// or sit on an obstacle. All problems are joined into one error.
func Validate(grid astar.Grid) error {
	var errs []error
	if grid.Dimension <= 0 {
		errs = append(errs, fmt.Errorf("%w: dimension %d must be positive", ErrInvalid, grid.Dimension))
	}

	endpoints := []struct {
		name string
		p    astar.Position
	}{
		{"start", grid.Start},
		{"end", grid.End},
	}
	for _, ep := range endpoints {
		switch {
		case !grid.InBounds(ep.p):
			errs = append(errs, fmt.Errorf("%w: %s (%s) is outside the %dx%d grid", ErrInvalid, ep.name, ep.p, grid.Dimension, grid.Dimension))
		case grid.IsObstacle(ep.p):
			errs = append(errs, fmt.Errorf("%w: %s (%s) is an obstacle", ErrInvalid, ep.name, ep.p))
		}
	}
	return errors.Join(errs...)
}
