package game

import "golang.org/x/exp/constraints"

// MapMatrix holds one value per tile of a map, indexed by tile ID.
type MapMatrix[T constraints.Integer | constraints.Float] struct {
	values []T
}

// NewMapMatrix returns a matrix for the map with every entry set to initial.
func NewMapMatrix[T constraints.Integer | constraints.Float](m *Map, initial T) MapMatrix[T] {
	values := make([]T, len(m.Tiles))
	for i := range values {
		values[i] = initial
	}
	return MapMatrix[T]{values: values}
}

func (mm MapMatrix[T]) Get(t *Tile) T {
	return mm.values[t.ID]
}

func (mm MapMatrix[T]) Set(t *Tile, value T) {
	mm.values[t.ID] = value
}

// IsZero reports whether the matrix was never allocated.
func (mm MapMatrix[T]) IsZero() bool {
	return mm.values == nil
}

// DistanceMatrix runs a breadth-first search from the given tiles over every
// non-obstacle tile. Unreached tiles hold Unreachable.
func DistanceMatrix(m *Map, from ...*Tile) MapMatrix[int] {
	distances := NewMapMatrix(m, Unreachable)
	queue := make([]*Tile, 0, len(m.Tiles))
	for _, t := range from {
		distances.Set(t, 0)
		queue = append(queue, t)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		next := distances.Get(current) + 1
		for _, adj := range current.Movable {
			if m.IsObstacle(adj) || distances.Get(adj) <= next {
				continue
			}
			distances.Set(adj, next)
			queue = append(queue, adj)
		}
	}
	return distances
}
