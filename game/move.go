package game

import "fmt"

// Move moves every army but one from Source to the adjacent Dest. The zero value is
// NoMove, a pass.
type Move struct {
	Source *Tile
	Dest   *Tile
}

// NoMove is the explicit "pass" option.
var NoMove = Move{}

func (m Move) IsNoOp() bool {
	return m.Source == nil
}

func (m Move) String() string {
	if m.IsNoOp() {
		return "none"
	}
	return fmt.Sprintf("%s->%s", m.Source, m.Dest)
}

// BoardMoves is the joint move of one simulated turn.
type BoardMoves struct {
	Friendly Move
	Enemy    Move
}

func (b BoardMoves) String() string {
	return fmt.Sprintf("f %s, e %s", b.Friendly, b.Enemy)
}

// MoveFilter restricts which destinations an army may move into.
type MoveFilter interface {
	Allow(source, dest *Tile) bool
}

// MoveFilterFunc adapts a plain function to a MoveFilter.
type MoveFilterFunc func(source, dest *Tile) bool

func (f MoveFilterFunc) Allow(source, dest *Tile) bool {
	return f(source, dest)
}

// TowardsFilter forces movement along a gradient: strictly decreasing values when
// strict is set, otherwise non-increasing (towards or parallel to the target).
func TowardsFilter[T int | float64](gradient MapMatrix[T], strict bool) MoveFilter {
	if strict {
		return MoveFilterFunc(func(source, dest *Tile) bool {
			return gradient.Get(dest) < gradient.Get(source)
		})
	}
	return MoveFilterFunc(func(source, dest *Tile) bool {
		return gradient.Get(dest) <= gradient.Get(source)
	})
}
