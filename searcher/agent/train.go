package agent

import (
	"math"

	"scrim/engine"
	"scrim/experiments/metrics"
	"scrim/game"
	"scrim/searcher"

	"golang.org/x/exp/rand"
)

type samplingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewSamplingAgent returns an MCTS agent that samples the friendly move in proportion to
// its root visits raised to 1/temperature. It is used to diversify self-play.
func NewSamplingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &samplingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *samplingAgent) FindMove(e *engine.ArmyEngine, turns int) (game.BoardMoves, metrics.SearchMetric, error) {
	summary := a.mcts.Simulate(e, searcher.NewContext(e.Prepare(turns), turns))
	moves := summary.BestMoves
	if len(summary.FriendlyStats) > 0 {
		policy := adjustTemperature(summary.FriendlyStats, a.temperature)
		moves.Friendly = summary.FriendlyStats[sample(policy, a.rng)].Move
	}
	return moves, searchMetric(summary), nil
}

func (a *samplingAgent) Name() string {
	return "mcts_sampling"
}

func adjustTemperature(stats []searcher.MoveStat, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(stats))
	for i, stat := range stats {
		adjusted[i] = math.Pow(float64(stat.Visits), exponent)
		sum += adjusted[i]
	}
	if sum == 0 {
		for i := range adjusted {
			adjusted[i] = 1 / float64(len(adjusted))
		}
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(policy []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
