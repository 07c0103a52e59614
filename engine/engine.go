// Package engine runs the brute-force scrim search: every joint move down to a target
// turn, resolved with an equilibrium filter at the root and minimax comparisons below.
package engine

import (
	"errors"

	"scrim/game"
)

// ErrPathInconsistent reports a result whose single-army move sequence jumps between
// unconnected tiles.
var ErrPathInconsistent = errors.New("path is inconsistent")

// TreeSearcher runs a search over the engine's scrim in place of the brute force. The
// engine supplies transitions, move generation and scoring.
type TreeSearcher interface {
	Search(e *ArmyEngine, root *game.BoardState, turns int) (*ArmySimResult, error)
}
