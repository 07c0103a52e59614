package agent

import (
	"scrim/engine"
	"scrim/experiments/metrics"
	"scrim/game"
	"scrim/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an MCTS agent that plays each player's robust root move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(e *engine.ArmyEngine, turns int) (game.BoardMoves, metrics.SearchMetric, error) {
	summary := a.mcts.Simulate(e, searcher.NewContext(e.Prepare(turns), turns))
	return summary.BestMoves, searchMetric(summary), nil
}

func (a evaluationAgent) Name() string {
	return "mcts"
}

// searchMetric fills in what the collector leaves out when metrics are disabled.
func searchMetric(summary *searcher.Summary) metrics.SearchMetric {
	metric := summary.Metric
	metric.Duration = summary.Duration
	metric.Iterations = summary.Iterations
	return metric
}
