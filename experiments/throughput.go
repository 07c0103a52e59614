package experiments

import (
	"fmt"
	"time"

	"scrim/game"
	"scrim/searcher"

	"github.com/rs/zerolog/log"
)

// Throughput is how fast one searcher expands the root of a scenario.
type Throughput struct {
	Searcher   string
	Budget     time.Duration
	Iterations int
	PerSecond  float64
}

// RunThroughputExperiment scans the scenario's root once per budget with each searcher
// and reports iterations per second.
func (a *Arena) RunThroughputExperiment(scenario Scenario, budgets []time.Duration) ([]Throughput, error) {
	m, err := game.ParseMap(scenario.Rows)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	log.Info().Msgf("starting throughput experiment on %s...", scenario.Name)

	var results []Throughput
	for _, budget := range budgets {
		e := a.newEngine(m, game.Friendly, scenario.Turn, scenario.KillThreat)
		e.TimeLimit = budget
		result, err := e.Scan(a.cfg.Horizon, true, false)
		if err != nil {
			return nil, err
		}
		results = append(results, throughput("brute_force", budget, result.Iterations, result.Duration))

		e = a.newEngine(m, game.Friendly, scenario.Turn, scenario.KillThreat)
		mcts := searcher.NewMCTS(searcher.WithDuration(budget))
		e.Searcher = mcts
		result, err = e.Scan(a.cfg.Horizon, true, true)
		if err != nil {
			return nil, err
		}
		results = append(results, throughput("mcts", budget, result.Iterations, result.Duration))
	}

	for _, r := range results {
		log.Info().Msgf("%-12s budget=%s iterations=%d rate=%.0f/s", r.Searcher, r.Budget, r.Iterations, r.PerSecond)
	}
	return results, nil
}

func throughput(name string, budget time.Duration, iterations int, elapsed time.Duration) Throughput {
	t := Throughput{Searcher: name, Budget: budget, Iterations: iterations}
	if elapsed > 0 {
		t.PerSecond = float64(iterations) / elapsed.Seconds()
	}
	return t
}
