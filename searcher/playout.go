package searcher

import (
	"fmt"

	"scrim/engine"
	"scrim/game"
)

// playout plays joint moves from state until the line ends or the cutoff is hit. The
// first few actions may follow the engine's one-ply comparison; the rest are uniform.
func (m *MCTS) playout(e *engine.ArmyEngine, state *game.BoardState, turns int) *game.BoardState {
	biased := 0
	for steps := 0; !e.IsTerminal(state, turns); steps++ {
		if steps >= m.cutoff {
			return state
		}
		if steps >= maxPlayoutSteps {
			panic(fmt.Sprintf("playout exceeded %d steps at %s", maxPlayoutSteps, state))
		}

		var joint game.BoardMoves
		if biased < m.biasedActions && m.rng.Float64() < m.biasProbability {
			joint = e.ComparisonBasedJointMove(state)
			biased++
			m.metrics.AddBiasedStep()
		} else {
			friendly, enemy := e.Moves(state)
			joint = game.BoardMoves{
				Friendly: friendly[m.rng.Intn(len(friendly))],
				Enemy:    enemy[m.rng.Intn(len(enemy))],
			}
		}
		state = e.NextState(state, joint.Friendly, joint.Enemy)
	}

	m.metrics.AddFullPlayout()
	return state
}
