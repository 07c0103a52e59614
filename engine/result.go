package engine

import (
	"fmt"
	"strings"
	"time"

	"scrim/game"
)

// ArmySimResult is the expected line of play found by a scan.
type ArmySimResult struct {
	BestResultState        *game.BoardState
	Moves                  []game.BoardMoves // Joint moves in play order, root excluded
	NetEconomyDifferential int               // Econ differential gained over the scan
	Value                  int

	Iterations   int
	Duration     time.Duration
	TimeInNash   time.Duration
	TimeInNashEq time.Duration
}

// BestFriendlyMove is the first friendly move of the expected line.
func (r *ArmySimResult) BestFriendlyMove() game.Move {
	if len(r.Moves) == 0 {
		return game.NoMove
	}
	return r.Moves[0].Friendly
}

// BestEnemyMove is the first enemy move of the expected line.
func (r *ArmySimResult) BestEnemyMove() game.Move {
	if len(r.Moves) == 0 {
		return game.NoMove
	}
	return r.Moves[0].Enemy
}

func (r *ArmySimResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "value %d econ %+d over %d turns (%d iterations in %s, nash %s)",
		r.Value, r.NetEconomyDifferential, len(r.Moves), r.Iterations, r.Duration, r.TimeInNash)
	for i, moves := range r.Moves {
		fmt.Fprintf(&sb, "\n  %d: %s", i+1, moves)
	}
	return sb.String()
}
