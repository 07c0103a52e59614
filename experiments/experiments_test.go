package experiments

import (
	"context"
	"testing"
	"time"

	"scrim/experiments/metrics"
	"scrim/game"

	"github.com/stretchr/testify/require"
)

func regressionConfig() Config {
	cfg := DefaultConfig()
	cfg.Trials = 20
	cfg.Turns = 4
	cfg.Horizon = 3
	cfg.Engine.TimeLimit = 50 * time.Millisecond
	cfg.MCTS.Iterations = 300
	return cfg
}

func TestArenaRun(t *testing.T) {
	cfg := regressionConfig()
	scenario := cfg.Scenarios[0]

	report, err := NewArena(cfg).Run(context.Background(), scenario, cfg.Trials)

	require.NoError(t, err)
	require.Len(t, report.Trials, cfg.Trials)

	t.Run("alternating the mcts side", func(t *testing.T) {
		sides := map[int]int{}
		for _, trial := range report.Trials {
			sides[trial.MCTSSide]++
		}
		require.Equal(t, map[int]int{0: 10, 1: 10}, sides)
	})

	t.Run("recording one move per player per turn", func(t *testing.T) {
		turns := 0
		for _, trial := range report.Trials {
			require.Positive(t, trial.Turns)
			require.LessOrEqual(t, trial.Turns, cfg.Turns)
			turns += trial.Turns
		}
		require.Len(t, report.Moves, 2*turns)
	})

	t.Run("keeping mcts and brute force at parity", func(t *testing.T) {
		const margin = 3
		mcts, bruteForce, _ := report.Outcomes(margin)

		require.Less(t, mcts, 16, "MCTS should not win big consistently")
		require.Less(t, bruteForce, 16, "MCTS should not lose big consistently")
		require.Less(t, report.MeanAbsValue(), float64(margin))
	})
}

func TestArenaRunCancelled(t *testing.T) {
	cfg := regressionConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewArena(cfg).Run(ctx, cfg.Scenarios[0], 4)

	require.ErrorIs(t, err, context.Canceled)
}

func TestRunExperiment(t *testing.T) {
	cfg := regressionConfig()
	cfg.Trials = 2
	cfg.Turns = 2
	cfg.Scenarios = append(cfg.Scenarios, Scenario{Name: "corridor", Rows: []string{"a11 . M . b11"}})

	reports, err := RunExperiment(context.Background(), cfg, "regression", t.TempDir())

	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, "corridor", reports[1].Scenario)
}

func TestOutcomes(t *testing.T) {
	report := &Report{Trials: []metrics.TrialRecord{
		{TrialMetric: metrics.TrialMetric{FinalValue: 4}},
		{TrialMetric: metrics.TrialMetric{FinalValue: 1}},
		{TrialMetric: metrics.TrialMetric{FinalValue: 0}},
		{TrialMetric: metrics.TrialMetric{FinalValue: -5}},
	}}

	mcts, bruteForce, draws := report.Outcomes(2)

	require.Equal(t, 1, mcts)
	require.Equal(t, 1, bruteForce)
	require.Equal(t, 2, draws)
	require.Equal(t, 2.5, report.MeanAbsValue())
}

func TestLiveBoard(t *testing.T) {
	t.Run("counting cities at their scrim weight", func(t *testing.T) {
		m := game.MustParseMap("a5 a1C . b3")

		require.Equal(t, 25, economy(m, game.Friendly))
		require.Equal(t, -25, economy(m, game.Enemy))
	})

	t.Run("writing simulated turns back", func(t *testing.T) {
		m := game.MustParseMap("a21 b6")
		a, b := m.GetTile(0, 0), m.GetTile(1, 0)
		arena := NewArena(DefaultConfig())
		e := arena.newEngine(m, game.Friendly, 0, false)

		advance(m, e.NextState(e.Prepare(1), game.Move{Source: a, Dest: b}, game.NoMove))

		require.Equal(t, game.Friendly, b.Player)
		require.Equal(t, 14, b.Army)
		require.Equal(t, 1, a.Army)
		require.Equal(t, 2, economy(m, game.Friendly))
		require.Empty(t, armies(m, game.Enemy))
	})
}
