package searcher

import (
	"fmt"
	"strings"
	"time"

	"scrim/engine"
	"scrim/experiments/metrics"
	"scrim/game"
)

// MoveStat is the root statistics of one player's move.
type MoveStat struct {
	Move    game.Move
	Visits  int
	Average float64
}

// Summary is the outcome of one SelectAction call.
type Summary struct {
	Moves       []game.BoardMoves // Robust line from the root, root excluded
	ResultState *game.BoardState  // State the robust line ends in
	BestMoves   game.BoardMoves   // Each player's robust root move

	Iterations int
	TreeSize   int
	Duration   time.Duration

	FriendlyStats []MoveStat
	EnemyStats    []MoveStat
	Metric        metrics.SearchMetric
}

func (m *MCTS) summarize(ctx *Context) *Summary {
	s := &Summary{ResultState: ctx.State, TreeSize: m.size}
	root := m.root
	if root.terminal || root.visits == 0 {
		return s
	}

	s.FriendlyStats = moveStats(root, game.Friendly)
	s.EnemyStats = moveStats(root, game.Enemy)
	s.BestMoves = root.joint(m.robustIndexes(root))

	// Follow robust children while the joint move was actually expanded
	for n := root; !n.terminal && n.visits > 0; {
		joint := s.BestMoves
		if n != root {
			joint = n.joint(m.robustIndexes(n))
		}
		child, ok := n.children[joint]
		if !ok {
			break
		}
		s.Moves = append(s.Moves, joint)
		s.ResultState = child.state
		n = child
	}
	return s
}

func (m *MCTS) robustIndexes(n *node) [2]int {
	return [2]int{robust(n.stats[game.Friendly], m.rng), robust(n.stats[game.Enemy], m.rng)}
}

func moveStats(n *node, player int) []MoveStat {
	stats := make([]MoveStat, len(n.moves[player]))
	for i, move := range n.moves[player] {
		stats[i] = MoveStat{Move: move, Visits: n.stats[player][i].visits, Average: n.stats[player][i].average()}
	}
	return stats
}

// ToResult converts the summary into the engine's result type.
func (s *Summary) ToResult(e *engine.ArmyEngine) *engine.ArmySimResult {
	result := e.NewResult(s.ResultState, s.Moves)
	result.Iterations = s.Iterations
	result.Duration = s.Duration
	return result
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "best %s after %d iterations (%d nodes, %s)", s.BestMoves, s.Iterations, s.TreeSize, s.Duration)
	for _, stat := range s.FriendlyStats {
		fmt.Fprintf(&b, "\n  f %-10s visits=%d avg=%.3f", stat.Move, stat.Visits, stat.Average)
	}
	for _, stat := range s.EnemyStats {
		fmt.Fprintf(&b, "\n  e %-10s visits=%d avg=%.3f", stat.Move, stat.Visits, stat.Average)
	}
	return b.String()
}
