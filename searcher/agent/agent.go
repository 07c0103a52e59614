package agent

import (
	"scrim/engine"
	"scrim/experiments/metrics"
	"scrim/game"
)

type Agent interface {
	// FindMove searches turns ahead from the engine's armies and returns the joint move
	// it expects to be played next, with performance metrics of the search
	FindMove(e *engine.ArmyEngine, turns int) (game.BoardMoves, metrics.SearchMetric, error)
	Name() string
}

type bruteForceAgent struct{}

// NewBruteForceAgent returns an agent backed by the engine's own exhaustive scan.
func NewBruteForceAgent() Agent {
	return bruteForceAgent{}
}

func (a bruteForceAgent) FindMove(e *engine.ArmyEngine, turns int) (game.BoardMoves, metrics.SearchMetric, error) {
	result, err := e.Scan(turns, true, false)
	if err != nil {
		return game.BoardMoves{}, metrics.SearchMetric{}, err
	}
	metric := metrics.SearchMetric{Duration: result.Duration, Iterations: result.Iterations}
	return game.BoardMoves{Friendly: result.BestFriendlyMove(), Enemy: result.BestEnemyMove()}, metric, nil
}

func (a bruteForceAgent) Name() string {
	return "brute_force"
}
